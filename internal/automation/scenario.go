package automation

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/mirror"
	"github.com/san-kum/bounce/internal/sim"
)

// Scenario scripts operator edits against a scene without a UI.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Config      string `yaml:"config"`
	Preset      string `yaml:"preset"`
	Frames      int    `yaml:"frames"`
	Edits       []Edit `yaml:"edits"`

	dir string
}

// Edit is applied to the mirror right before the tick of Frame. Unset fields
// are left alone.
type Edit struct {
	Frame    int       `yaml:"frame"`
	Select   *int      `yaml:"select,omitempty"`
	Reset    bool      `yaml:"reset,omitempty"`
	Active   *bool     `yaml:"active,omitempty"`
	Scale    *float64  `yaml:"scale,omitempty"`
	Velocity []float64 `yaml:"velocity,flow,omitempty"`
	Color    []float64 `yaml:"color,flow,omitempty"`
	Name     *string   `yaml:"name,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", sc.Frames)
	}
	if sc.Config != "" && sc.Preset != "" {
		return fmt.Errorf("config and preset are mutually exclusive")
	}
	for i, e := range sc.Edits {
		if e.Frame < 0 || e.Frame >= sc.Frames {
			return fmt.Errorf("edit %d: frame %d outside [0, %d)", i, e.Frame, sc.Frames)
		}
		if e.Velocity != nil && len(e.Velocity) != 2 {
			return fmt.Errorf("edit %d: velocity needs 2 components, got %d", i, len(e.Velocity))
		}
	}
	last := sc.Frames - 1
	if reselectsOn(sc.Edits, last) {
		for i, e := range sc.Edits {
			if e.Frame == last && e.hasFields() {
				return fmt.Errorf("edit %d: field edits on frame %d follow a selection change and would land after the last frame", i, last)
			}
		}
	}
	return nil
}

// reselectsOn reports whether any edit on frame changes the selection.
func reselectsOn(edits []Edit, frame int) bool {
	for _, e := range edits {
		if e.Frame == frame && e.changesSelection() {
			return true
		}
	}
	return false
}

// LoadConfig resolves the scene: a config file relative to the scenario, a
// named preset, or the defaults.
func (sc *Scenario) LoadConfig(log *zap.Logger) (*config.Config, error) {
	switch {
	case sc.Config != "":
		path := sc.Config
		if !filepath.IsAbs(path) {
			path = filepath.Join(sc.dir, path)
		}
		return config.Load(path, log)
	case sc.Preset != "":
		return config.GetPreset(sc.Preset)
	default:
		return config.DefaultConfig(), nil
	}
}

// Simulator builds a fresh simulator for the scenario's scene.
func (sc *Scenario) Simulator(log *zap.Logger) (*sim.Simulator, error) {
	cfg, err := sc.LoadConfig(log)
	if err != nil {
		return nil, err
	}
	return sim.New(cfg.WindowDescriptor(), cfg.FontDescriptor(), cfg.Templates(log), log), nil
}

// changesSelection reports whether the edit causes a full mirror overwrite
// on the next reconcile.
func (e Edit) changesSelection() bool {
	return e.Reset || e.Select != nil
}

func (e Edit) hasFields() bool {
	return e.Active != nil || e.Scale != nil || e.Velocity != nil || e.Color != nil || e.Name != nil
}

// applyFields writes the edit into m and marks the touched fields dirty.
func (e Edit) applyFields(m *mirror.Mirror) {
	if e.Name != nil {
		m.Name = *e.Name
		m.MarkDirty(mirror.FieldName)
	}
	if e.Active != nil {
		m.Active = *e.Active
		m.MarkDirty(mirror.FieldActive)
	}
	if e.Scale != nil {
		m.Scale = *e.Scale
		m.MarkDirty(mirror.FieldScale)
	}
	if e.Velocity != nil {
		m.Velocity.X, m.Velocity.Y = e.Velocity[0], e.Velocity[1]
		m.MarkDirty(mirror.FieldVelocity)
	}
	if e.Color != nil {
		m.Color = config.ColorFromSlice(e.Color)
		m.MarkDirty(mirror.FieldColor)
	}
}
