package mirror_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/mirror"
	"github.com/san-kum/bounce/internal/shape"
)

func newStore() entity.Store {
	return entity.Store{
		entity.New("a", dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: 1, Y: 1}, shape.NewCircle(10), dynamo.RGB(1, 0, 0)),
		entity.New("b", dynamo.Vec2{X: 200, Y: 200}, dynamo.Vec2{X: -2, Y: 0}, shape.NewRectangle(20, 10), dynamo.RGB(0, 1, 0)),
		entity.New("c", dynamo.Vec2{X: 300, Y: 300}, dynamo.Vec2{X: 5, Y: -3}, shape.NewCircle(4), dynamo.RGB(0, 0, 1)),
	}
}

var _ = Describe("Sync", func() {
	var (
		store entity.Store
		sync  *mirror.Sync
	)

	BeforeEach(func() {
		store = newStore()
		sync = mirror.NewSync()
	})

	It("fills the mirror from entity 0 on the first frame", func() {
		Expect(sync.Reconcile(store)).To(Equal(mirror.Selected))
		Expect(sync.Current).To(Equal(mirror.FromEntity(0, store[0])))
		Expect(store[0].Scale).To(Equal(1.0))
	})

	Context("on selection change", func() {
		BeforeEach(func() {
			sync.Reconcile(store)
		})

		It("overwrites every mirror field regardless of prior contents", func() {
			sync.Current = mirror.Mirror{
				Selected: 2,
				Active:   false,
				Scale:    42,
				Velocity: dynamo.Vec2{X: 99, Y: 99},
				Color:    dynamo.Black,
				Name:     "garbage",
			}

			Expect(sync.Reconcile(store)).To(Equal(mirror.Selected))
			Expect(sync.Current).To(Equal(mirror.FromEntity(2, store[2])))
		})

		It("does not write the stale mirror into the new entity", func() {
			sync.Current.Name = "edited"
			sync.Select(1)

			sync.Reconcile(store)
			Expect(store[1].Name).To(Equal("b"))
			Expect(store[0].Name).To(Equal("a"))
		})
	})

	Context("on a steady frame", func() {
		BeforeEach(func() {
			sync.Select(2)
			sync.Reconcile(store)
		})

		It("pulls simulation-driven velocity into an unedited mirror", func() {
			store[2].Velocity = dynamo.Vec2{X: 5, Y: 3}

			Expect(sync.Reconcile(store)).To(Equal(mirror.Reconciled))
			Expect(sync.Current.Velocity).To(Equal(dynamo.Vec2{X: 5, Y: 3}))
		})

		It("pushes an operator velocity edit into the entity", func() {
			sync.Current.Velocity = dynamo.Vec2{X: 10, Y: 0}
			store[2].Velocity = dynamo.Vec2{X: -5, Y: 3}

			sync.Reconcile(store)
			Expect(store[2].Velocity).To(Equal(dynamo.Vec2{X: 10, Y: 0}))
			Expect(sync.Current.Velocity).To(Equal(dynamo.Vec2{X: 10, Y: 0}))
		})

		It("resolves velocity components independently", func() {
			sync.Current.Velocity.X = 8
			store[2].Velocity = dynamo.Vec2{X: 5, Y: 3}

			sync.Reconcile(store)
			Expect(store[2].Velocity).To(Equal(dynamo.Vec2{X: 8, Y: 3}))
			Expect(sync.Current.Velocity).To(Equal(dynamo.Vec2{X: 8, Y: 3}))
		})

		It("always writes operator-only fields to the entity", func() {
			sync.Current.Name = "renamed"
			sync.Current.Active = false
			sync.Current.Scale = 2.5
			sync.Current.Color = dynamo.RGB(0.5, 0.5, 0.5)

			sync.Reconcile(store)
			Expect(store[2].Name).To(Equal("renamed"))
			Expect(store[2].Active).To(BeFalse())
			Expect(store[2].Scale).To(Equal(2.5))
			Expect(store[2].Color).To(Equal(dynamo.RGB(0.5, 0.5, 0.5)))
		})

		It("keeps the previous snapshot equal to the reconciled mirror", func() {
			sync.Current.Scale = 3
			sync.Reconcile(store)
			Expect(sync.Previous()).To(Equal(sync.Current))
		})

		// Exact equality misreads an edit back to last frame's displayed
		// value as "no edit". This pins that behavior.
		It("loses an undirtied edit equal to last frame's value", func() {
			store[2].Velocity = dynamo.Vec2{X: -5, Y: -3}
			sync.Current.Velocity = dynamo.Vec2{X: 5, Y: -3}

			sync.Reconcile(store)
			Expect(store[2].Velocity).To(Equal(dynamo.Vec2{X: -5, Y: -3}))
			Expect(sync.Current.Velocity).To(Equal(dynamo.Vec2{X: -5, Y: -3}))
		})

		It("keeps a dirty edit even when it equals last frame's value", func() {
			store[2].Velocity = dynamo.Vec2{X: -5, Y: -3}
			sync.Current.Velocity = dynamo.Vec2{X: 5, Y: -3}
			sync.Current.MarkDirty(mirror.FieldVelocityX)

			sync.Reconcile(store)
			Expect(store[2].Velocity).To(Equal(dynamo.Vec2{X: 5, Y: -3}))
			Expect(sync.Current.IsDirty(mirror.FieldAll)).To(BeFalse())
		})
	})

	Context("with an out of range selection", func() {
		It("skips an empty store", func() {
			Expect(sync.Reconcile(entity.Store{})).To(Equal(mirror.Skipped))
			Expect(sync.Current).To(Equal(mirror.Mirror{}))
		})

		It("skips without touching the store or the previous snapshot", func() {
			sync.Reconcile(store)
			prev := sync.Previous()
			before := store.Clone()

			sync.Select(7)
			sync.Current.Name = "ignored"

			Expect(sync.Reconcile(store)).To(Equal(mirror.Skipped))
			Expect(store).To(Equal(before))
			Expect(sync.Previous()).To(Equal(prev))
		})

		It("skips negative indices", func() {
			sync.Select(-1)
			Expect(sync.Reconcile(store)).To(Equal(mirror.Skipped))
		})
	})

	It("forces a full overwrite when reselecting the same index", func() {
		sync.Reconcile(store)
		sync.Current.Name = "pending edit"
		store[0].Velocity = dynamo.Vec2{X: 7, Y: 7}

		sync.ForceReselect(0)
		Expect(sync.Reconcile(store)).To(Equal(mirror.Selected))
		Expect(sync.Current).To(Equal(mirror.FromEntity(0, store[0])))
		Expect(store[0].Name).To(Equal("a"))
	})

	It("reports a pending overwrite until the next reconcile", func() {
		Expect(sync.Pending()).To(BeTrue())
		sync.Reconcile(store)
		Expect(sync.Pending()).To(BeFalse())

		sync.Select(1)
		Expect(sync.Pending()).To(BeTrue())
		sync.Select(0)
		Expect(sync.Pending()).To(BeFalse())

		sync.ForceReselect(0)
		Expect(sync.Pending()).To(BeTrue())
		sync.Reconcile(store)
		Expect(sync.Pending()).To(BeFalse())
	})
})

var _ = Describe("Mirror", func() {
	It("tracks dirty fields as a set", func() {
		var m mirror.Mirror
		m.MarkDirty(mirror.FieldScale)
		m.MarkDirty(mirror.FieldVelocityY)

		Expect(m.IsDirty(mirror.FieldScale)).To(BeTrue())
		Expect(m.IsDirty(mirror.FieldVelocity)).To(BeTrue())
		Expect(m.IsDirty(mirror.FieldName)).To(BeFalse())
	})

	It("names outcomes", func() {
		Expect(mirror.Skipped.String()).To(Equal("skipped"))
		Expect(mirror.Selected.String()).To(Equal("selected"))
		Expect(mirror.Reconciled.String()).To(Equal("reconciled"))
	})
})
