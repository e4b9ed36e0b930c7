package sim

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
)

// Render draws every active entity: its shape, then its name centred on the
// entity position.
func (f Frame) Render(r Renderer) {
	for i := range f.Store {
		e := &f.Store[i]
		if !e.Active {
			continue
		}
		if f.Toggles.DrawShapes {
			e.Shape.Draw(r, e.Position, e.Scale, e.Color)
		}
		if f.Toggles.DrawNames {
			drawName(r, e, f.Font)
		}
	}
}

func drawName(r Renderer, e *entity.Entity, font dynamo.Font) {
	if e.Name == "" {
		return
	}
	extent := r.MeasureText(e.Name, font.Size)
	r.DrawText(e.Name, e.BoundingBox().Center().Sub(extent.Scale(0.5)), font.Size, font.Color)
}
