package control

import (
	"fmt"
	"math"

	"github.com/san-kum/bounce/internal/mirror"
	"github.com/san-kum/bounce/internal/sim"
)

type Field int

const (
	FieldActive Field = iota
	FieldScale
	FieldVelocityX
	FieldVelocityY
	FieldRed
	FieldGreen
	FieldBlue
	FieldAlpha
	numFields
)

var fieldLabels = [numFields]string{
	"active", "scale", "vel x", "vel y", "red", "green", "blue", "alpha",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldLabels[f]
}

// step sizes, fine then coarse
var steps = [numFields][2]float64{
	FieldScale:     {0.05, 0.5},
	FieldVelocityX: {0.1, 1},
	FieldVelocityY: {0.1, 1},
	FieldRed:       {0.05, 0.25},
	FieldGreen:     {0.05, 0.25},
	FieldBlue:      {0.05, 0.25},
	FieldAlpha:     {0.05, 0.25},
}

const MaxScale = 10

// Input is one frame's worth of operator intent.
type Input struct {
	NextEntity, PrevEntity bool
	FieldUp, FieldDown     bool
	Increase, Decrease     bool
	Coarse                 bool

	ToggleActive   bool
	ToggleShapes   bool
	ToggleNames    bool
	ToggleSimulate bool
	Reset          bool

	StartRename bool
	Text        []rune
	Backspace   bool
	Commit      bool
	Cancel      bool
}

type Panel struct {
	Cursor Field

	renaming bool
	buffer   []rune
}

func NewPanel() *Panel {
	return &Panel{}
}

// Renaming reports whether the panel is capturing text. Front-ends should
// route printable keys to Input.Text and skip shortcuts while it is.
func (p *Panel) Renaming() bool { return p.renaming }

// Buffer is the name being typed.
func (p *Panel) Buffer() string { return string(p.buffer) }

// Handle applies in to s. It must be called before s.Tick for edits to land
// in the same frame. Field edits are ignored between a selection change or
// reset and the tick that refills the mirror.
func (p *Panel) Handle(in Input, s *sim.Simulator) {
	if p.renaming {
		p.handleRename(in, s.Mirror())
		return
	}

	switch {
	case in.NextEntity:
		s.SelectNext(1)
	case in.PrevEntity:
		s.SelectNext(-1)
	}

	if in.FieldDown {
		p.Cursor = (p.Cursor + 1) % numFields
	}
	if in.FieldUp {
		p.Cursor = (p.Cursor + numFields - 1) % numFields
	}

	if in.ToggleShapes {
		s.Toggles.DrawShapes = !s.Toggles.DrawShapes
	}
	if in.ToggleNames {
		s.Toggles.DrawNames = !s.Toggles.DrawNames
	}
	if in.ToggleSimulate {
		s.Toggles.Simulate = !s.Toggles.Simulate
	}
	if in.Reset {
		s.Reset()
		return
	}
	// until the next tick the mirror still holds the old entity and is about
	// to be overwritten, so field edits are dropped
	if s.ReselectPending() || s.Store().Len() == 0 {
		return
	}

	m := s.Mirror()
	if in.ToggleActive {
		m.Active = !m.Active
		m.MarkDirty(mirror.FieldActive)
	}
	if in.StartRename {
		p.renaming = true
		p.buffer = []rune(m.Name)
		return
	}

	dir := 0.0
	if in.Increase {
		dir++
	}
	if in.Decrease {
		dir--
	}
	if dir != 0 {
		p.Adjust(m, dir, in.Coarse)
	}
}

func (p *Panel) handleRename(in Input, m *mirror.Mirror) {
	switch {
	case in.Cancel:
		p.renaming = false
		p.buffer = nil
		return
	case in.Commit:
		m.Name = string(p.buffer)
		m.MarkDirty(mirror.FieldName)
		p.renaming = false
		p.buffer = nil
		return
	}
	if in.Backspace && len(p.buffer) > 0 {
		p.buffer = p.buffer[:len(p.buffer)-1]
	}
	p.buffer = append(p.buffer, in.Text...)
}

// Adjust moves the field under the cursor by one step in direction dir.
func (p *Panel) Adjust(m *mirror.Mirror, dir float64, coarse bool) {
	if p.Cursor == FieldActive {
		m.Active = !m.Active
		m.MarkDirty(mirror.FieldActive)
		return
	}

	step := steps[p.Cursor][0]
	if coarse {
		step = steps[p.Cursor][1]
	}
	delta := dir * step

	switch p.Cursor {
	case FieldScale:
		m.Scale = clamp(m.Scale+delta, 0, MaxScale)
		m.MarkDirty(mirror.FieldScale)
	case FieldVelocityX:
		m.Velocity.X += delta
		m.MarkDirty(mirror.FieldVelocityX)
	case FieldVelocityY:
		m.Velocity.Y += delta
		m.MarkDirty(mirror.FieldVelocityY)
	case FieldRed:
		m.Color.R = clamp(m.Color.R+delta, 0, 1)
		m.MarkDirty(mirror.FieldColor)
	case FieldGreen:
		m.Color.G = clamp(m.Color.G+delta, 0, 1)
		m.MarkDirty(mirror.FieldColor)
	case FieldBlue:
		m.Color.B = clamp(m.Color.B+delta, 0, 1)
		m.MarkDirty(mirror.FieldColor)
	case FieldAlpha:
		m.Color.A = clamp(m.Color.A+delta, 0, 1)
		m.MarkDirty(mirror.FieldColor)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Row is one line of the panel.
type Row struct {
	Label    string
	Value    string
	Selected bool
}

// Rows lays out the mirror for display. The first row is the selected
// entity's name and is never under the cursor.
func (p *Panel) Rows(m mirror.Mirror) []Row {
	name := m.Name
	if p.renaming {
		name = string(p.buffer) + "_"
	}
	rows := []Row{{Label: "entity", Value: fmt.Sprintf("[%d] %s", m.Selected, name)}}

	for f := Field(0); f < numFields; f++ {
		rows = append(rows, Row{
			Label:    f.String(),
			Value:    formatField(f, m),
			Selected: f == p.Cursor,
		})
	}
	return rows
}

func formatField(f Field, m mirror.Mirror) string {
	switch f {
	case FieldActive:
		return onOff(m.Active)
	case FieldScale:
		return fmt.Sprintf("%.2f", m.Scale)
	case FieldVelocityX:
		return fmt.Sprintf("%.2f", m.Velocity.X)
	case FieldVelocityY:
		return fmt.Sprintf("%.2f", m.Velocity.Y)
	case FieldRed:
		return fmt.Sprintf("%.2f", m.Color.R)
	case FieldGreen:
		return fmt.Sprintf("%.2f", m.Color.G)
	case FieldBlue:
		return fmt.Sprintf("%.2f", m.Color.B)
	case FieldAlpha:
		return fmt.Sprintf("%.2f", m.Color.A)
	}
	return ""
}

// Toggles formats the global switches for a status line.
func Toggles(t sim.Toggles) string {
	return fmt.Sprintf("[1] shapes %s  [2] names %s  [3] simulate %s",
		onOff(t.DrawShapes), onOff(t.DrawNames), onOff(t.Simulate))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
