package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/bounce/internal/control"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	panelWidth = 28
	minCols    = 10
	minRows    = 5
)

type TickMsg time.Time

type Options struct {
	FPS   int
	Theme string
	Log   *zap.Logger
}

type Model struct {
	sim    *sim.Simulator
	panel  *control.Panel
	canvas *Canvas
	theme  int
	period time.Duration
	log    *zap.Logger

	width, height int
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	m := Model{
		sim:    s,
		panel:  control.NewPanel(),
		period: time.Second / time.Duration(opts.FPS),
		log:    opts.Log,
		width:  80,
		height: 24,
	}
	for i, t := range Themes {
		if t.Name == opts.Theme {
			m.theme = i
		}
	}
	m.resize()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) resize() {
	cols := m.width - panelWidth - 6
	rows := m.height - 4
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.canvas = NewCanvas(cols, rows)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case TickMsg:
		m.sim.Tick()
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.panel.Renaming() {
		in := control.Input{}
		switch msg.Type {
		case tea.KeyEnter:
			in.Commit = true
		case tea.KeyEsc:
			in.Cancel = true
		case tea.KeyBackspace:
			in.Backspace = true
		case tea.KeyRunes, tea.KeySpace:
			in.Text = msg.Runes
		}
		m.panel.Handle(in, m.sim)
		return m, nil
	}

	var in control.Input
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		return m, nil
	case "tab":
		in.NextEntity = true
	case "shift+tab":
		in.PrevEntity = true
	case "up", "k":
		in.FieldUp = true
	case "down", "j":
		in.FieldDown = true
	case "right", "l":
		in.Increase = true
	case "left", "h":
		in.Decrease = true
	case "shift+right", "L":
		in.Increase, in.Coarse = true, true
	case "shift+left", "H":
		in.Decrease, in.Coarse = true, true
	case "a":
		in.ToggleActive = true
	case "n":
		in.StartRename = true
	case "1":
		in.ToggleShapes = true
	case "2":
		in.ToggleNames = true
	case "3":
		in.ToggleSimulate = true
	case "r":
		in.Reset = true
		m.log.Info("reset from panel")
	default:
		return m, nil
	}
	m.panel.Handle(in, m.sim)
	return m, nil
}

func (m Model) View() string {
	st := Themes[m.theme].styles()

	m.canvas.Clear()
	r := newCanvasRenderer(m.canvas, m.sim.Window())
	r.border(m.sim.Window())
	m.sim.Render(r)

	scene := st.box.Render(m.canvas.Render())
	side := st.box.Width(panelWidth).Render(m.viewPanel(st))
	body := lipgloss.JoinHorizontal(lipgloss.Top, scene, side)

	status := st.muted.Render(fmt.Sprintf(" frame %d  %s  theme %s",
		m.sim.FrameNumber(), control.Toggles(m.sim.Toggles), Themes[m.theme].Name))
	return body + "\n" + status
}

func (m Model) viewPanel(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render(m.sim.Window().Caption) + "\n\n")

	if m.sim.Store().Len() == 0 {
		b.WriteString(st.muted.Render("no entities"))
		return b.String()
	}

	for _, row := range m.panel.Rows(*m.sim.Mirror()) {
		label := fmt.Sprintf("%-7s", row.Label)
		if row.Selected {
			b.WriteString(st.selected.Render("▸ "+label) + " " + st.selected.Render(row.Value) + "\n")
			continue
		}
		b.WriteString("  " + st.label.Render(label) + " " + st.value.Render(row.Value) + "\n")
	}
	b.WriteString("\n" + st.muted.Render("tab select  ←/→ adjust\nn rename  r reset  q quit"))
	return b.String()
}

// Run drives s from the terminal until the user quits.
func Run(s *sim.Simulator, opts Options) error {
	_, err := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen()).Run()
	return err
}
