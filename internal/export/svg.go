package export

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/san-kum/bounce/internal/dynamo"
)

// glyphAspect approximates the advance of one glyph as a fraction of the
// font size. SVG viewers pick their own font so exact metrics are unknown.
const glyphAspect = 0.6

// SVGRenderer draws frames into a standalone SVG document sized to the
// simulation window.
type SVGRenderer struct {
	window     dynamo.Window
	background dynamo.Color
	sb         strings.Builder
}

func NewSVGRenderer(w dynamo.Window, background dynamo.Color) *SVGRenderer {
	return &SVGRenderer{window: w, background: background}
}

func (r *SVGRenderer) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	fmt.Fprintf(&r.sb, `<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
		center.X, center.Y, radius, fill(c))
}

func (r *SVGRenderer) FillRect(box dynamo.AABB, c dynamo.Color) {
	fmt.Fprintf(&r.sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
		box.X, box.Y, box.Width, box.Height, fill(c))
}

func (r *SVGRenderer) MeasureText(text string, size int) dynamo.Vec2 {
	n := utf8.RuneCountInString(text)
	return dynamo.Vec2{X: float64(n) * float64(size) * glyphAspect, Y: float64(size)}
}

// DrawText places text with pos as its top-left corner, like a raster font.
func (r *SVGRenderer) DrawText(text string, pos dynamo.Vec2, size int, c dynamo.Color) {
	fmt.Fprintf(&r.sb, `<text x="%.2f" y="%.2f" font-family="monospace" font-size="%d" dominant-baseline="hanging"%s>%s</text>`+"\n",
		pos.X, pos.Y, size, fill(c), html.EscapeString(text))
}

// Trail draws a polyline through points, typically one entity's recorded
// positions.
func (r *SVGRenderer) Trail(points []dynamo.Vec2, c dynamo.Color) {
	if len(points) < 2 {
		return
	}
	r.sb.WriteString(`<path fill="none" stroke-width="1" stroke="` + c.Hex() + `" d="M`)
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&r.sb, "%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&r.sb, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	r.sb.WriteString(`"/>` + "\n")
}

// String returns the complete document.
func (r *SVGRenderer) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, r.window.Width, r.window.Height, r.window.Width, r.window.Height, r.background.Hex())
	out.WriteString(r.sb.String())
	out.WriteString("</svg>\n")
	return out.String()
}

func fill(c dynamo.Color) string {
	s := fmt.Sprintf(` fill="%s"`, c.Hex())
	if c.A < 1 {
		s += fmt.Sprintf(` fill-opacity="%.3f"`, c.A)
	}
	return s
}
