// Package entity holds the simulated objects and the ordered store they live in.
//
// Entities are values. [Entity.Clone] and plain assignment both produce an
// independent copy because every field, the shape included, is a value type.
// Templates are the immutable records loaded from configuration; the store is
// always rebuilt from them, never edited back into them.
package entity

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/shape"
)

type Entity struct {
	Name     string
	Position dynamo.Vec2
	Velocity dynamo.Vec2
	Shape    shape.Shape
	Scale    float64
	Color    dynamo.Color
	Active   bool
}

// New returns an active entity at scale 1.
func New(name string, pos, vel dynamo.Vec2, s shape.Shape, c dynamo.Color) Entity {
	return Entity{
		Name:     name,
		Position: pos,
		Velocity: vel,
		Shape:    s,
		Scale:    1,
		Color:    c,
		Active:   true,
	}
}

func (e Entity) Clone() Entity {
	e.Shape = e.Shape.Clone()
	return e
}

func (e Entity) BoundingBox() dynamo.AABB {
	return e.Shape.BoundingBox(e.Position, e.Scale)
}

// Template is the source record an entity is instantiated from.
type Template Entity

func (t Template) Instantiate() Entity {
	return Entity(t).Clone()
}
