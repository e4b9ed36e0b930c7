package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bounce/internal/dynamo"
)

// textSpacing is the extra advance between glyphs, in pixels.
const textSpacing = 1

// renderer draws frames with raylib. It satisfies sim.Renderer.
type renderer struct {
	font rl.Font
}

func (r *renderer) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	rl.DrawCircleV(vec(center), float32(radius), color(c))
}

func (r *renderer) FillRect(box dynamo.AABB, c dynamo.Color) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(box.X), float32(box.Y), float32(box.Width), float32(box.Height)), color(c))
}

func (r *renderer) MeasureText(text string, size int) dynamo.Vec2 {
	v := rl.MeasureTextEx(r.font, text, float32(size), textSpacing)
	return dynamo.Vec2{X: float64(v.X), Y: float64(v.Y)}
}

func (r *renderer) DrawText(text string, pos dynamo.Vec2, size int, c dynamo.Color) {
	rl.DrawTextEx(r.font, text, vec(pos), float32(size), textSpacing, color(c))
}

func vec(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func color(c dynamo.Color) rl.Color {
	r, g, b, a := c.Bytes()
	return rl.NewColor(r, g, b, a)
}
