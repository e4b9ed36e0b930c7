package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/mirror"
	"github.com/san-kum/bounce/internal/physics"
)

// Simulator owns the store, the mirror and the loop order. It is not safe
// for concurrent use; hand a Snapshot to any other goroutine.
type Simulator struct {
	window    dynamo.Window
	font      dynamo.Font
	templates []entity.Template
	store     entity.Store
	sync      *mirror.Sync
	frame     int
	observers []Observer
	log       *zap.Logger

	Toggles Toggles
}

func New(window dynamo.Window, font dynamo.Font, templates []entity.Template, log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	tmpl := entity.CopyTemplates(templates)
	return &Simulator{
		window:    window,
		font:      font,
		templates: tmpl,
		store:     entity.Instantiate(tmpl),
		sync:      mirror.NewSync(),
		observers: make([]Observer, 0),
		log:       log,
		Toggles:   DefaultToggles(),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Window() dynamo.Window        { return s.window }
func (s *Simulator) Font() dynamo.Font            { return s.font }
func (s *Simulator) Store() entity.Store          { return s.store }
func (s *Simulator) Templates() []entity.Template { return s.templates }
func (s *Simulator) FrameNumber() int             { return s.frame }

// Mirror is the operator-editable mirror. Edits take effect on the next Tick.
func (s *Simulator) Mirror() *mirror.Mirror { return &s.sync.Current }

// Select changes the selected entity. Out of range indices are ignored by
// reconciliation until a valid one is chosen.
func (s *Simulator) Select(i int) { s.sync.Select(i) }

// ReselectPending reports whether the next Tick overwrites the mirror from
// the selected entity.
func (s *Simulator) ReselectPending() bool { return s.sync.Pending() }

// SelectNext moves the selection by delta, wrapping around the store.
func (s *Simulator) SelectNext(delta int) {
	n := s.store.Len()
	if n == 0 {
		return
	}
	i := (s.sync.Current.Selected + delta) % n
	if i < 0 {
		i += n
	}
	s.sync.Select(i)
}

// Tick runs one frame: reconcile the mirror, then move entities. Reconcile
// must come first so an operator velocity edit is used by this frame's move.
func (s *Simulator) Tick() Stats {
	outcome := s.sync.Reconcile(s.store)
	if outcome == mirror.Selected {
		s.log.Debug("selection changed",
			zap.Int("index", s.sync.Current.Selected),
			zap.String("name", s.sync.Current.Name))
	}

	bounces := 0
	if s.Toggles.Simulate {
		bounces = physics.Step(s.store, s.window)
	}

	stats := Stats{
		Frame:   s.frame,
		Sync:    outcome,
		Bounces: bounces,
		Active:  s.store.Active(),
	}
	for _, o := range s.observers {
		o.OnFrame(stats, s.store)
	}
	s.frame++
	return stats
}

// Reset rebuilds the store from the templates and reselects entity 0.
func (s *Simulator) Reset() {
	s.store = entity.Reset(s.templates)
	s.sync.ForceReselect(0)
	s.log.Info("simulation reset", zap.Int("entities", s.store.Len()), zap.Int("frame", s.frame))
}

// Frame returns a view over the live store. It must not outlive the next Tick.
func (s *Simulator) Frame() Frame {
	return Frame{
		Number:  s.frame,
		Window:  s.window,
		Font:    s.font,
		Store:   s.store,
		Toggles: s.Toggles,
	}
}

// Snapshot returns an independent copy safe to read from another goroutine.
func (s *Simulator) Snapshot() Frame {
	f := s.Frame()
	f.Store = s.store.Clone()
	return f
}

func (s *Simulator) Render(r Renderer) {
	s.Frame().Render(r)
}

// Run ticks headlessly until ctx is done or frames ticks have run. frames <= 0
// runs until ctx is done.
func (s *Simulator) Run(ctx context.Context, frames int) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Tick()
	}
	return nil
}
