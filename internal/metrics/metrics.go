package metrics

import (
	"math"
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/sim"
)

type Metric interface {
	Name() string
	Observe(stats sim.Stats, store entity.Store)
	Value() float64
	Reset()
}

// Set fans frames out to its metrics. It is a sim.Observer.
type Set []Metric

// Default returns the metrics recorded for every headless run.
func Default(w dynamo.Window) Set {
	return Set{NewBounces(), NewMeanSpeed(), NewActiveCount(), NewMaxOverflow(w)}
}

func (s Set) OnFrame(stats sim.Stats, store entity.Store) {
	for _, m := range s {
		m.Observe(stats, store)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name()
	}
	sort.Strings(names)
	return names
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

type Bounces struct {
	total int
}

func NewBounces() *Bounces { return &Bounces{} }

func (b *Bounces) Name() string { return "bounces" }

func (b *Bounces) Observe(stats sim.Stats, store entity.Store) {
	b.total += stats.Bounces
}

func (b *Bounces) Value() float64 { return float64(b.total) }
func (b *Bounces) Reset()         { b.total = 0 }

// MeanSpeed averages the speed of active entities over all observed frames.
type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(stats sim.Stats, store entity.Store) {
	for i := range store {
		if !store[i].Active {
			continue
		}
		v := store[i].Velocity
		m.sum += math.Hypot(v.X, v.Y)
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// ActiveCount reports the number of active entities in the last frame.
type ActiveCount struct {
	last int
}

func NewActiveCount() *ActiveCount { return &ActiveCount{} }

func (a *ActiveCount) Name() string { return "active" }

func (a *ActiveCount) Observe(stats sim.Stats, store entity.Store) {
	a.last = stats.Active
}

func (a *ActiveCount) Value() float64 { return float64(a.last) }
func (a *ActiveCount) Reset()         { a.last = 0 }

// MaxOverflow tracks the largest distance, in pixels, any active entity's
// bounding box reached outside the window. Movement does not clamp, so this
// is non-zero whenever an entity is drawn partly off screen.
type MaxOverflow struct {
	window dynamo.Window
	max    float64
}

func NewMaxOverflow(w dynamo.Window) *MaxOverflow {
	return &MaxOverflow{window: w}
}

func (m *MaxOverflow) Name() string { return "max_overflow" }

func (m *MaxOverflow) Observe(stats sim.Stats, store entity.Store) {
	w, h := float64(m.window.Width), float64(m.window.Height)
	for i := range store {
		if !store[i].Active {
			continue
		}
		box := store[i].BoundingBox()
		over := math.Max(
			math.Max(-box.X, box.Right()-w),
			math.Max(-box.Y, box.Bottom()-h),
		)
		m.max = math.Max(m.max, over)
	}
}

func (m *MaxOverflow) Value() float64 { return m.max }
func (m *MaxOverflow) Reset()         { m.max = 0 }
