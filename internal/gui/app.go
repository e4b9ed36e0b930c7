package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/bounce/internal/control"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPanel   = rl.NewColor(20, 20, 20, 220)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	panelX, panelY = 10, 10
	panelWidth     = 260
	rowHeight      = 22
	panelTextSize  = 16
)

type Options struct {
	FPS int
	Log *zap.Logger
}

type App struct {
	sim   *sim.Simulator
	panel *control.Panel
	rend  *renderer
	log   *zap.Logger

	ShowPanel bool
	quit      bool
}

// Run opens a window sized from the simulator and blocks until it is closed.
func Run(s *sim.Simulator, opts Options) error {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	w := s.Window()
	if !w.Valid() {
		return fmt.Errorf("%w: %dx%d", dynamo.ErrInvalidWindow, w.Width, w.Height)
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Caption)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	font := loadFont(s.Font(), opts.Log)
	defer rl.UnloadFont(font)

	app := &App{
		sim:       s,
		panel:     control.NewPanel(),
		rend:      &renderer{font: font},
		log:       opts.Log,
		ShowPanel: true,
	}
	opts.Log.Info("window open",
		zap.String("caption", w.Caption),
		zap.Int("width", w.Width),
		zap.Int("height", w.Height),
		zap.Int("entities", s.Store().Len()))

	app.RunLoop()
	return nil
}

// loadFont loads the configured font file. raylib's default font is used
// when no file is configured or it cannot be read.
func loadFont(f dynamo.Font, log *zap.Logger) rl.Font {
	if f.File == "" {
		return rl.GetFontDefault()
	}
	if _, err := os.Stat(f.File); err != nil {
		log.Warn("font unavailable, using default", zap.String("file", f.File), zap.Error(err))
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(f.File, int32(f.Size), nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	in := a.readInput()
	if !a.panel.Renaming() {
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.quit = true
			return
		}
		if rl.IsKeyPressed(rl.KeyH) {
			a.ShowPanel = !a.ShowPanel
		}
	}
	a.panel.Handle(in, a.sim)
	if in.Reset {
		a.log.Info("reset from panel")
	}
	a.sim.Tick()
}

func (a *App) readInput() control.Input {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if a.panel.Renaming() {
		in := control.Input{
			Backspace: rl.IsKeyPressed(rl.KeyBackspace),
			Commit:    rl.IsKeyPressed(rl.KeyEnter),
			Cancel:    rl.IsKeyPressed(rl.KeyEscape),
		}
		for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
			in.Text = append(in.Text, rune(ch))
		}
		return in
	}

	tab := rl.IsKeyPressed(rl.KeyTab)
	return control.Input{
		NextEntity:     tab && !shift,
		PrevEntity:     tab && shift,
		FieldUp:        rl.IsKeyPressed(rl.KeyUp),
		FieldDown:      rl.IsKeyPressed(rl.KeyDown),
		Increase:       rl.IsKeyPressed(rl.KeyRight),
		Decrease:       rl.IsKeyPressed(rl.KeyLeft),
		Coarse:         shift,
		ToggleActive:   rl.IsKeyPressed(rl.KeyA),
		ToggleShapes:   rl.IsKeyPressed(rl.KeyOne),
		ToggleNames:    rl.IsKeyPressed(rl.KeyTwo),
		ToggleSimulate: rl.IsKeyPressed(rl.KeyThree),
		Reset:          rl.IsKeyPressed(rl.KeyR),
		StartRename:    rl.IsKeyPressed(rl.KeyN),
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.sim.Render(a.rend)
	if a.ShowPanel {
		a.drawPanel()
	}
	a.drawStatus()

	rl.EndDrawing()
}

func (a *App) drawPanel() {
	if a.sim.Store().Len() == 0 {
		a.drawText("no entities", panelX+10, panelY+10, panelTextSize, ColTextDim)
		return
	}

	rows := a.panel.Rows(*a.sim.Mirror())
	rl.DrawRectangle(panelX, panelY, panelWidth, int32(len(rows)*rowHeight+16), ColPanel)

	y := panelY + 8
	for _, row := range rows {
		col, marker := ColText, " "
		if row.Selected {
			col, marker = ColSelect, ">"
		}
		a.drawText(fmt.Sprintf("%s %-7s %s", marker, row.Label, row.Value), panelX+8, y, panelTextSize, col)
		y += rowHeight
	}
}

func (a *App) drawStatus() {
	h := a.sim.Window().Height
	a.drawText(control.Toggles(a.sim.Toggles), 10, h-44, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS  frame %d  [TAB] SELECT  [N] RENAME  [R] RESET  [H] PANEL  [ESC] QUIT",
		int32(rl.GetFPS()), a.sim.FrameNumber()), 10, h-24, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, c rl.Color) {
	rl.DrawTextEx(a.rend.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), textSpacing, c)
}
