package automation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/sim"
)

// Run ticks s for the scenario's frames, applying edits as it goes.
//
// A reset or selection edit overwrites the mirror on the next reconcile, so
// when any entry on a frame changes the selection, every field edit on that
// frame is held back one frame and lands on the newly selected entity.
func Run(ctx context.Context, sc *Scenario, s *sim.Simulator, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	byFrame := make(map[int][]Edit, len(sc.Edits))
	for _, e := range sc.Edits {
		byFrame[e.Frame] = append(byFrame[e.Frame], e)
	}

	var deferred []Edit
	for frame := 0; frame < sc.Frames; frame++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("scenario %q: %w", sc.Name, &dynamo.FrameError{Frame: frame, Wrapped: ctx.Err()})
		default:
		}

		m := s.Mirror()
		for _, e := range deferred {
			e.applyFields(m)
		}
		deferred = deferred[:0]

		edits := byFrame[frame]
		reselect := false
		for _, e := range edits {
			if e.Reset {
				s.Reset()
			}
			if e.Select != nil {
				s.Select(*e.Select)
			}
			reselect = reselect || e.changesSelection()
		}
		for _, e := range edits {
			if !e.hasFields() {
				continue
			}
			if reselect {
				deferred = append(deferred, e)
				continue
			}
			e.applyFields(m)
		}

		stats := s.Tick()
		if len(byFrame[frame]) > 0 {
			log.Debug("applied edits",
				zap.Int("frame", frame),
				zap.Int("edits", len(byFrame[frame])),
				zap.Stringer("sync", stats.Sync))
		}
	}

	if len(deferred) > 0 {
		log.Warn("field edits dropped after the last frame",
			zap.String("name", sc.Name),
			zap.Int("edits", len(deferred)))
	}
	log.Info("scenario complete", zap.String("name", sc.Name), zap.Int("frames", sc.Frames))
	return nil
}
