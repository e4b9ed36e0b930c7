package entity_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/shape"
)

func templates() []entity.Template {
	return []entity.Template{
		entity.Template(entity.New("ball", dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: 2, Y: 3}, shape.NewCircle(20), dynamo.RGB(1, 0, 0))),
		entity.Template(entity.New("brick", dynamo.Vec2{X: 300, Y: 200}, dynamo.Vec2{X: -1, Y: 0}, shape.NewRectangle(40, 10), dynamo.RGB(0, 1, 0))),
		entity.Template(entity.New("dot", dynamo.Vec2{X: 50, Y: 500}, dynamo.Vec2{X: 0, Y: -4}, shape.NewCircle(3), dynamo.RGB(0, 0, 1))),
	}
}

var _ = Describe("Entity", func() {
	It("clones without sharing the shape", func() {
		orig := entity.New("ball", dynamo.Vec2{X: 10, Y: 10}, dynamo.Vec2{}, shape.NewCircle(5), dynamo.White)
		before := orig.BoundingBox()

		clone := orig.Clone()
		clone.Shape.Radius = 50
		clone.Shape.Kind = shape.Rectangle
		clone.Shape.Width = 8

		Expect(orig.BoundingBox()).To(Equal(before))
		Expect(orig.Shape).To(Equal(shape.NewCircle(5)))
	})

	It("starts active at scale 1", func() {
		e := entity.New("x", dynamo.Vec2{}, dynamo.Vec2{}, shape.Default(), dynamo.White)
		Expect(e.Active).To(BeTrue())
		Expect(e.Scale).To(Equal(1.0))
	})
})

var _ = Describe("Store", func() {
	var tmpl []entity.Template

	BeforeEach(func() {
		tmpl = templates()
	})

	It("instantiates one entity per template in order", func() {
		s := entity.Instantiate(tmpl)
		Expect(s.Len()).To(Equal(3))
		Expect(s.Names()).To(Equal([]string{"ball", "brick", "dot"}))
	})

	It("tolerates an empty template list", func() {
		s := entity.Instantiate(nil)
		Expect(s).NotTo(BeNil())
		Expect(s.Len()).To(BeZero())
		Expect(s.At(0)).To(BeNil())
	})

	It("never writes store edits back into templates", func() {
		s := entity.Instantiate(tmpl)
		s.At(0).Position = dynamo.Vec2{X: -1, Y: -1}
		s.At(0).Shape.Radius = 999

		Expect(tmpl[0].Position).To(Equal(dynamo.Vec2{X: 100, Y: 100}))
		Expect(tmpl[0].Shape.Radius).To(Equal(20.0))
	})

	It("restores exact template values on reset", func() {
		s := entity.Instantiate(tmpl)
		for i := range s {
			s[i].Position = s[i].Position.Add(s[i].Velocity.Scale(40))
			s[i].Velocity = dynamo.Vec2{X: 9, Y: 9}
			s[i].Active = false
			s[i].Scale = 3
		}

		s = entity.Reset(tmpl)
		Expect(s.Len()).To(Equal(len(tmpl)))
		for i := range s {
			Expect(s[i]).To(Equal(entity.Entity(tmpl[i])))
		}

		s.At(1).Shape.Width = 1
		Expect(tmpl[1].Shape.Width).To(Equal(40.0))
	})

	It("guards At against out of range indices", func() {
		s := entity.Instantiate(tmpl)
		Expect(s.At(-1)).To(BeNil())
		Expect(s.At(3)).To(BeNil())
		Expect(s.At(2).Name).To(Equal("dot"))
	})

	It("counts active entities", func() {
		s := entity.Instantiate(tmpl)
		s.At(1).Active = false
		Expect(s.Active()).To(Equal(2))
	})

	It("clones the whole store independently", func() {
		s := entity.Instantiate(tmpl)
		c := s.Clone()
		c.At(0).Name = "changed"
		Expect(s.At(0).Name).To(Equal("ball"))
	})

	It("copies templates defensively", func() {
		c := entity.CopyTemplates(tmpl)
		tmpl[0].Name = "mutated"
		Expect(c[0].Name).To(Equal("ball"))
	})
})
