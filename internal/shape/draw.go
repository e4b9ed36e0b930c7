package shape

import "github.com/san-kum/bounce/internal/dynamo"

// Painter is the fill capability a rendering backend provides.
type Painter interface {
	FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color)
	FillRect(box dynamo.AABB, c dynamo.Color)
}

// Draw paints the shape centred on pos. Geometry is scaled the same way as
// BoundingBox, so what is drawn is what bounces.
func (s Shape) Draw(p Painter, pos dynamo.Vec2, scale float64, c dynamo.Color) {
	s = s.Scaled(scale)
	switch s.Kind {
	case Rectangle:
		p.FillRect(s.BoundingBox(pos, 1), c)
	default:
		p.FillCircle(pos, s.Radius, c)
	}
}
