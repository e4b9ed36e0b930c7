package sim

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/mirror"
	"github.com/san-kum/bounce/internal/shape"
)

// Renderer is what a drawing backend provides. Text measurement belongs to
// the backend because only it knows the loaded font.
type Renderer interface {
	shape.Painter
	MeasureText(text string, size int) dynamo.Vec2
	DrawText(text string, pos dynamo.Vec2, size int, c dynamo.Color)
}

// Observer is notified after every tick, once movement has run.
type Observer interface {
	OnFrame(stats Stats, store entity.Store)
}

// Toggles are the global switches of the control panel.
type Toggles struct {
	DrawShapes bool
	DrawNames  bool
	Simulate   bool
}

func DefaultToggles() Toggles {
	return Toggles{DrawShapes: true, DrawNames: true, Simulate: true}
}

// Stats describes one completed tick.
type Stats struct {
	Frame   int
	Sync    mirror.Outcome
	Bounces int
	Active  int
}

// Frame is a read-only view of the world for one render pass.
type Frame struct {
	Number  int
	Window  dynamo.Window
	Font    dynamo.Font
	Store   entity.Store
	Toggles Toggles
}
