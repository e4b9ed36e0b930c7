// Package shape implements the two drawable shape kinds entities can carry.
//
// A [Shape] is a closed tagged variant over circle and rectangle. It is a
// plain value: assigning or returning it copies the parameters, so two
// entities never share one. Every per-kind operation dispatches on [Kind] in
// a single method, and the bounding box is the only geometry primitive the
// rest of the engine consumes.
//
// Parameters must be positive. The shape methods do not check this; callers
// that accept untrusted input use [Shape.Valid].
package shape

import (
	"fmt"
	"strings"

	"github.com/san-kum/bounce/internal/dynamo"
)

type Kind int

const (
	Circle Kind = iota
	Rectangle
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Rectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the kind names case-insensitively ("Circle", "rect", ...).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "circle":
		return Circle, nil
	case "rectangle", "rect":
		return Rectangle, nil
	}
	return 0, fmt.Errorf("unknown shape kind: %s", s)
}

// Shape is either a circle (Radius) or a rectangle (Width, Height). The zero
// value is a degenerate circle of radius 0; use the constructors, or Default
// for the unit circle an unconfigured entity gets.
type Shape struct {
	Kind   Kind
	Radius float64
	Width  float64
	Height float64
}

func NewCircle(radius float64) Shape {
	return Shape{Kind: Circle, Radius: radius}
}

func NewRectangle(width, height float64) Shape {
	return Shape{Kind: Rectangle, Width: width, Height: height}
}

// Default is the shape an entity gets when none is configured.
func Default() Shape {
	return NewCircle(1)
}

// BoundingBox returns the box the shape occupies when centred on pos and
// scaled by scale. Circles yield a square of side 2*r*scale.
func (s Shape) BoundingBox(pos dynamo.Vec2, scale float64) dynamo.AABB {
	s = s.Scaled(scale)
	switch s.Kind {
	case Rectangle:
		return dynamo.CenteredAABB(pos, s.Width, s.Height)
	default:
		return dynamo.CenteredAABB(pos, 2*s.Radius, 2*s.Radius)
	}
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	return s
}

func (s Shape) Valid() bool {
	switch s.Kind {
	case Circle:
		return s.Radius > 0
	case Rectangle:
		return s.Width > 0 && s.Height > 0
	}
	return false
}

// Scaled returns the shape with its parameters multiplied by factor.
func (s Shape) Scaled(factor float64) Shape {
	s.Radius *= factor
	s.Width *= factor
	s.Height *= factor
	return s
}

func (s Shape) String() string {
	switch s.Kind {
	case Rectangle:
		return fmt.Sprintf("rectangle %gx%g", s.Width, s.Height)
	default:
		return fmt.Sprintf("circle r=%g", s.Radius)
	}
}
