package mirror

import "github.com/san-kum/bounce/internal/entity"

// Sync owns the operator-facing mirror and the copy of it taken at the end of
// the previous frame.
type Sync struct {
	Current  Mirror
	previous Mirror
	reselect bool
}

// NewSync returns a Sync that fills itself from entity 0 on the first frame.
func NewSync() *Sync {
	return &Sync{reselect: true}
}

// Previous returns the mirror as it was at the end of the last reconciled
// frame.
func (s *Sync) Previous() Mirror { return s.previous }

// Select changes the selection. The overwrite happens on the next Reconcile.
func (s *Sync) Select(i int) {
	s.Current.Selected = i
}

// ForceReselect selects i and guarantees a full store-to-mirror overwrite on
// the next Reconcile even if i is already selected.
func (s *Sync) ForceReselect(i int) {
	s.Current.Selected = i
	s.reselect = true
}

// Pending reports whether the next Reconcile will overwrite the mirror from
// the store. Edits made to Current while pending are lost.
func (s *Sync) Pending() bool {
	return s.reselect || s.Current.Selected != s.previous.Selected
}

// Reconcile runs once per frame, before movement. An empty store or an out
// of range selection skips the frame and leaves the previous snapshot as is.
func (s *Sync) Reconcile(store entity.Store) Outcome {
	e := store.At(s.Current.Selected)
	if e == nil {
		return Skipped
	}

	outcome := Reconciled
	if s.reselect || s.Current.Selected != s.previous.Selected {
		s.Current = FromEntity(s.Current.Selected, *e)
		s.reselect = false
		outcome = Selected
	} else {
		s.apply(e)
	}

	s.Current.Dirty = 0
	s.previous = s.Current
	return outcome
}

func (s *Sync) apply(e *entity.Entity) {
	cur, prev := &s.Current, s.previous

	e.Name = cur.Name
	e.Active = cur.Active
	e.Scale = cur.Scale
	e.Color = cur.Color

	if cur.IsDirty(FieldVelocityX) || cur.Velocity.X != prev.Velocity.X {
		e.Velocity.X = cur.Velocity.X
	} else {
		cur.Velocity.X = e.Velocity.X
	}
	if cur.IsDirty(FieldVelocityY) || cur.Velocity.Y != prev.Velocity.Y {
		e.Velocity.Y = cur.Velocity.Y
	} else {
		cur.Velocity.Y = e.Velocity.Y
	}
}
