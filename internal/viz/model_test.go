package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/shape"
	"github.com/san-kum/bounce/internal/sim"
)

func newTestModel() Model {
	tmpl := []entity.Template{
		entity.Template(entity.New("ball", dynamo.Vec2{X: 10, Y: 300}, dynamo.Vec2{X: -5, Y: 0}, shape.NewCircle(20), dynamo.White)),
		entity.Template(entity.New("box", dynamo.Vec2{X: 400, Y: 300}, dynamo.Vec2{X: 1, Y: 1}, shape.NewRectangle(40, 40), dynamo.RGB(1, 0, 0))),
	}
	s := sim.New(dynamo.Window{Caption: "test", Width: 800, Height: 600}, dynamo.DefaultFont(), tmpl, nil)
	return NewModel(s, Options{FPS: 60, Theme: "retro"})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTick(t *testing.T) {
	m := newTestModel()
	if m.Init() == nil {
		t.Fatal("expected a tick command")
	}

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected the tick to reschedule")
	}

	e := m.sim.Store()[0]
	if e.Velocity.X != 5 || e.Position.X != 15 {
		t.Errorf("expected reflection, got pos %v vel %v", e.Position, e.Velocity)
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel()
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, TickMsg(time.Now()))
	if m.sim.Mirror().Selected != 1 {
		t.Errorf("expected entity 1 selected, got %d", m.sim.Mirror().Selected)
	}

	m = update(t, m, key("a"))
	m = update(t, m, TickMsg(time.Now()))
	if m.sim.Store()[1].Active {
		t.Error("expected entity 1 deactivated")
	}

	m = update(t, m, key("3"))
	if m.sim.Toggles.Simulate {
		t.Error("expected simulate off")
	}

	m = update(t, m, key("t"))
	if Themes[m.theme].Name != "minimal" {
		t.Errorf("expected theme to cycle to minimal, got %s", Themes[m.theme].Name)
	}
}

func TestModelEditBetweenSelectAndTick(t *testing.T) {
	m := newTestModel()
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg(time.Now()))

	store := m.sim.Store()
	if !store[0].Active || !store[1].Active {
		t.Errorf("expected the edit to be dropped, got active %v %v", store[0].Active, store[1].Active)
	}
	if !m.sim.Mirror().Active {
		t.Error("expected the mirror to show entity 1 as active")
	}
}

func TestModelRename(t *testing.T) {
	m := newTestModel()
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, key("n"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, key("q"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(time.Now()))

	if got := m.sim.Store()[0].Name; got != "balq" {
		t.Errorf("expected name balq, got %q", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel()
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, TickMsg(time.Now()))

	out := m.View()
	for _, want := range []string{"test", "frame 1", "vel x", "[0] ball"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if m.canvas.Width != 100-panelWidth-6 || m.canvas.Height != 26 {
		t.Errorf("unexpected canvas size %dx%d", m.canvas.Width, m.canvas.Height)
	}
}
