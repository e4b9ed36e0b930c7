package viz

import (
	"math"
	"unicode/utf8"

	"github.com/san-kum/bounce/internal/dynamo"
)

// canvasRenderer maps window pixels onto canvas dots with one uniform scale
// so circles stay round. It satisfies sim.Renderer.
type canvasRenderer struct {
	canvas *Canvas
	scale  float64
}

func newCanvasRenderer(c *Canvas, w dynamo.Window) *canvasRenderer {
	scale := 1.0
	if w.Width > 0 && w.Height > 0 {
		scale = math.Min(
			float64(c.SubWidth())/float64(w.Width),
			float64(c.SubHeight())/float64(w.Height),
		)
	}
	return &canvasRenderer{canvas: c, scale: scale}
}

func (r *canvasRenderer) dot(v float64) int {
	return int(math.Floor(v * r.scale))
}

func (r *canvasRenderer) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	color := c.Hex()
	cx, cy := center.X*r.scale, center.Y*r.scale
	rr := radius * r.scale

	r.canvas.SetColor(r.dot(center.X), r.dot(center.Y), color)
	for y := int(math.Floor(cy - rr)); y <= int(math.Ceil(cy+rr)); y++ {
		for x := int(math.Floor(cx - rr)); x <= int(math.Ceil(cx+rr)); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= rr*rr {
				r.canvas.SetColor(x, y, color)
			}
		}
	}
}

func (r *canvasRenderer) FillRect(box dynamo.AABB, c dynamo.Color) {
	color := c.Hex()
	x0, y0 := r.dot(box.X), r.dot(box.Y)
	x1, y1 := r.dot(box.Right()), r.dot(box.Bottom())
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.canvas.SetColor(x, y, color)
		}
	}
}

// MeasureText reports the extent of text in window pixels: one cell per
// rune, whatever the font size.
func (r *canvasRenderer) MeasureText(text string, size int) dynamo.Vec2 {
	n := utf8.RuneCountInString(text)
	return dynamo.Vec2{X: float64(n) * 2 / r.scale, Y: 4 / r.scale}
}

func (r *canvasRenderer) DrawText(text string, pos dynamo.Vec2, size int, c dynamo.Color) {
	col := int(math.Round(pos.X * r.scale / 2))
	row := int(math.Round(pos.Y * r.scale / 4))
	r.canvas.Label(col, row, text, c.Hex())
}

// border outlines the window area.
func (r *canvasRenderer) border(w dynamo.Window) {
	x1, y1 := r.dot(float64(w.Width))-1, r.dot(float64(w.Height))-1
	r.canvas.DrawLine(0, 0, x1, 0)
	r.canvas.DrawLine(x1, 0, x1, y1)
	r.canvas.DrawLine(x1, y1, 0, y1)
	r.canvas.DrawLine(0, y1, 0, 0)
}
