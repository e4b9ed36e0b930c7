// Package mirror keeps an editable copy of the selected entity in step with
// the store.
//
// A control surface edits a plain [Mirror] value between frames. Once per
// frame [Sync.Reconcile] decides, field by field, which side wins:
//
//   - selection changed: the whole mirror is overwritten from the entity.
//   - name, active, scale and color: the mirror always wins, the operator is
//     the only writer of those fields.
//   - velocity: each component is compared with last frame's mirror. A
//     component that changed, or was marked dirty, is an operator edit and is
//     written to the entity. An unchanged component is refreshed from the
//     entity so reflections show up in the editor.
//
// The velocity comparison is exact float equality. An operator who sets a
// component to the value the mirror already showed last frame produces no
// observable change, and the entity's value wins. Control surfaces that know
// when an edit happened should call [Mirror.MarkDirty] to avoid that.
package mirror

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
)

// Field is a bit set naming editable mirror fields.
type Field uint8

const (
	FieldName Field = 1 << iota
	FieldActive
	FieldScale
	FieldVelocityX
	FieldVelocityY
	FieldColor

	FieldVelocity = FieldVelocityX | FieldVelocityY
	FieldAll      = FieldName | FieldActive | FieldScale | FieldVelocity | FieldColor
)

type Mirror struct {
	Selected int
	Active   bool
	Scale    float64
	Velocity dynamo.Vec2
	Color    dynamo.Color
	Name     string

	// Dirty is set by control surfaces at edit time and cleared by Reconcile.
	Dirty Field
}

// FromEntity builds a mirror of e selected at index i.
func FromEntity(i int, e entity.Entity) Mirror {
	return Mirror{
		Selected: i,
		Active:   e.Active,
		Scale:    e.Scale,
		Velocity: e.Velocity,
		Color:    e.Color,
		Name:     e.Name,
	}
}

func (m *Mirror) MarkDirty(f Field) { m.Dirty |= f }

func (m Mirror) IsDirty(f Field) bool { return m.Dirty&f != 0 }

// Outcome reports what a reconciliation pass did.
type Outcome int

const (
	Skipped Outcome = iota
	Selected
	Reconciled
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Reconciled:
		return "reconciled"
	default:
		return "skipped"
	}
}
