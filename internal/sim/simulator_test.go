package sim_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/mirror"
	"github.com/san-kum/bounce/internal/shape"
	"github.com/san-kum/bounce/internal/sim"
)

var window = dynamo.Window{Caption: "test", Width: 800, Height: 600}

func threeTemplates() []entity.Template {
	return []entity.Template{
		entity.Template(entity.New("one", dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: 3, Y: 2}, shape.NewCircle(10), dynamo.RGB(1, 0, 0))),
		entity.Template(entity.New("two", dynamo.Vec2{X: 400, Y: 300}, dynamo.Vec2{X: -4, Y: 1}, shape.NewRectangle(30, 20), dynamo.RGB(0, 1, 0))),
		entity.Template(entity.New("three", dynamo.Vec2{X: 700, Y: 500}, dynamo.Vec2{X: 2, Y: -6}, shape.NewCircle(25), dynamo.RGB(0, 0, 1))),
	}
}

type call struct {
	kind string
	text string
	pos  dynamo.Vec2
}

type fakeRenderer struct {
	calls []call
}

func (f *fakeRenderer) FillCircle(center dynamo.Vec2, radius float64, c dynamo.Color) {
	f.calls = append(f.calls, call{kind: "circle", pos: center})
}

func (f *fakeRenderer) FillRect(box dynamo.AABB, c dynamo.Color) {
	f.calls = append(f.calls, call{kind: "rect", pos: box.Center()})
}

func (f *fakeRenderer) MeasureText(text string, size int) dynamo.Vec2 {
	return dynamo.Vec2{X: float64(len(text) * size), Y: float64(size)}
}

func (f *fakeRenderer) DrawText(text string, pos dynamo.Vec2, size int, c dynamo.Color) {
	f.calls = append(f.calls, call{kind: "text", text: text, pos: pos})
}

type countingObserver struct {
	frames  []int
	bounces int
}

func (c *countingObserver) OnFrame(stats sim.Stats, store entity.Store) {
	c.frames = append(c.frames, stats.Frame)
	c.bounces += stats.Bounces
}

var _ = Describe("Simulator", func() {
	It("reflects a circle off the left wall in one tick", func() {
		tmpl := []entity.Template{
			entity.Template(entity.New("ball", dynamo.Vec2{X: 10, Y: 300}, dynamo.Vec2{X: -5, Y: 0}, shape.NewCircle(20), dynamo.White)),
		}
		s := sim.New(window, dynamo.DefaultFont(), tmpl, nil)

		stats := s.Tick()

		e := s.Store().At(0)
		Expect(e.Velocity).To(Equal(dynamo.Vec2{X: 5, Y: 0}))
		Expect(e.Position).To(Equal(dynamo.Vec2{X: 15, Y: 300}))
		Expect(stats.Bounces).To(Equal(1))
	})

	It("resets to templates and reselects index 0", func() {
		tmpl := threeTemplates()
		s := sim.New(window, dynamo.DefaultFont(), tmpl, nil)
		s.Select(2)
		for i := 0; i < 30; i++ {
			s.Tick()
		}
		s.Mirror().Scale = 4

		s.Reset()
		Expect(s.Store().Len()).To(Equal(3))
		for i := range tmpl {
			Expect(*s.Store().At(i)).To(Equal(entity.Entity(tmpl[i])))
		}

		Expect(s.Tick().Sync).To(Equal(mirror.Selected))
		Expect(s.Mirror().Selected).To(Equal(0))
		Expect(*s.Mirror()).To(Equal(mirror.FromEntity(0, entity.Entity(tmpl[0]))))
	})

	It("applies an operator velocity edit in the same tick", func() {
		s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
		s.Tick()

		s.Mirror().Velocity = dynamo.Vec2{X: 10, Y: 0}
		s.Tick()

		e := s.Store().At(0)
		Expect(e.Velocity).To(Equal(dynamo.Vec2{X: 10, Y: 0}))
		Expect(e.Position).To(Equal(dynamo.Vec2{X: 113, Y: 102}))
	})

	It("shows reflections in the mirror on the following tick", func() {
		tmpl := []entity.Template{
			entity.Template(entity.New("ball", dynamo.Vec2{X: 10, Y: 300}, dynamo.Vec2{X: -5, Y: 0}, shape.NewCircle(20), dynamo.White)),
		}
		s := sim.New(window, dynamo.DefaultFont(), tmpl, nil)

		s.Tick()
		Expect(s.Mirror().Velocity).To(Equal(dynamo.Vec2{X: -5, Y: 0}))
		s.Tick()
		Expect(s.Mirror().Velocity).To(Equal(dynamo.Vec2{X: 5, Y: 0}))
	})

	It("freezes movement when simulation is toggled off", func() {
		s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
		s.Toggles.Simulate = false
		before := s.Store().Clone()

		s.Tick()
		Expect(s.Store()).To(Equal(before))
	})

	It("runs with an empty template list", func() {
		s := sim.New(window, dynamo.DefaultFont(), nil, nil)
		Expect(s.Tick().Sync).To(Equal(mirror.Skipped))
		s.Reset()
		Expect(s.Store().Len()).To(BeZero())
		s.SelectNext(1)
		Expect(s.Run(context.Background(), 5)).To(Succeed())
	})

	It("wraps selection in both directions", func() {
		s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
		s.SelectNext(-1)
		Expect(s.Mirror().Selected).To(Equal(2))
		s.SelectNext(1)
		Expect(s.Mirror().Selected).To(Equal(0))
	})

	It("isolates templates from the caller's slice", func() {
		tmpl := threeTemplates()
		s := sim.New(window, dynamo.DefaultFont(), tmpl, nil)
		tmpl[0].Name = "changed"

		s.Reset()
		Expect(s.Store().At(0).Name).To(Equal("one"))
	})

	It("notifies observers once per frame in order", func() {
		s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
		obs := &countingObserver{}
		s.AddObserver(obs)

		Expect(s.Run(context.Background(), 4)).To(Succeed())
		Expect(obs.frames).To(Equal([]int{0, 1, 2, 3}))
		Expect(s.FrameNumber()).To(Equal(4))
	})

	It("stops when the context is cancelled", func() {
		s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		Expect(s.Run(ctx, 0)).To(MatchError(context.DeadlineExceeded))
		Expect(s.FrameNumber()).To(BeNumerically(">", 0))
	})

	Describe("Render", func() {
		It("draws active entities with centred labels", func() {
			s := sim.New(window, dynamo.Font{Size: 10, Color: dynamo.White}, threeTemplates(), nil)
			s.Store().At(1).Active = false
			r := &fakeRenderer{}

			s.Render(r)

			Expect(r.calls).To(HaveLen(4))
			Expect(r.calls[0]).To(Equal(call{kind: "circle", pos: dynamo.Vec2{X: 100, Y: 100}}))
			Expect(r.calls[1]).To(Equal(call{kind: "text", text: "one", pos: dynamo.Vec2{X: 85, Y: 95}}))
			Expect(r.calls[3].text).To(Equal("three"))
		})

		It("honours the draw toggles", func() {
			s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
			s.Toggles.DrawNames = false
			r := &fakeRenderer{}
			s.Render(r)
			Expect(r.calls).To(HaveLen(3))

			s.Toggles.DrawShapes = false
			r = &fakeRenderer{}
			s.Render(r)
			Expect(r.calls).To(BeEmpty())
		})

		It("renders a snapshot that does not follow later ticks", func() {
			s := sim.New(window, dynamo.DefaultFont(), threeTemplates(), nil)
			snap := s.Snapshot()
			s.Tick()

			Expect(snap.Store.At(0).Position).To(Equal(dynamo.Vec2{X: 100, Y: 100}))
			Expect(s.Store().At(0).Position).To(Equal(dynamo.Vec2{X: 103, Y: 102}))
		})
	})
})
