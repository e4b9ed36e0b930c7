package physics

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
)

// Bounce records which velocity components were reflected in one step.
type Bounce struct {
	X, Y bool
}

func (b Bounce) Any() bool { return b.X || b.Y }

func (b Bounce) Count() int {
	n := 0
	if b.X {
		n++
	}
	if b.Y {
		n++
	}
	return n
}

// Move advances one entity by a single frame. Inactive entities are left
// untouched.
func Move(e *entity.Entity, w dynamo.Window) Bounce {
	if !e.Active {
		return Bounce{}
	}

	next := e.Position.Add(e.Velocity)
	box := e.Shape.BoundingBox(next, e.Scale)

	var b Bounce
	if box.X < 0 || box.Right() > float64(w.Width) {
		e.Velocity.X = -e.Velocity.X
		b.X = true
	}
	if box.Y < 0 || box.Bottom() > float64(w.Height) {
		e.Velocity.Y = -e.Velocity.Y
		b.Y = true
	}

	e.Position = e.Position.Add(e.Velocity)
	return b
}

// Step moves every active entity in the store and returns the number of
// reflected velocity components.
func Step(s entity.Store, w dynamo.Window) int {
	bounces := 0
	for i := range s {
		bounces += Move(&s[i], w).Count()
	}
	return bounces
}
