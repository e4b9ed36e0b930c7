package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/entity"
	"github.com/san-kum/bounce/internal/shape"
)

const (
	DefaultFontSize = 12
	DefaultFPS      = 60
	DefaultLogLevel = "info"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Font     FontConfig     `yaml:"font"`
	FPS      int            `yaml:"fps"`
	LogLevel string         `yaml:"log_level"`
	Entities []EntityConfig `yaml:"entities"`
}

type WindowConfig struct {
	Caption string `yaml:"caption"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

type FontConfig struct {
	File  string    `yaml:"file"`
	Size  int       `yaml:"size"`
	Color []float64 `yaml:"color,flow"`
}

type EntityConfig struct {
	Name     string     `yaml:"name"`
	Shape    string     `yaml:"shape"`
	Radius   float64    `yaml:"radius,omitempty"`
	Width    float64    `yaml:"width,omitempty"`
	Height   float64    `yaml:"height,omitempty"`
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
	Color    []float64  `yaml:"color,flow"`
	Scale    float64    `yaml:"scale,omitempty"`
	Active   *bool      `yaml:"active,omitempty"`
}

func DefaultConfig() *Config {
	w := dynamo.DefaultWindow()
	return &Config{
		Window: WindowConfig{
			Caption: w.Caption,
			Width:   w.Width,
			Height:  w.Height,
		},
		Font: FontConfig{
			Size:  DefaultFontSize,
			Color: []float64{1, 1, 1, 1},
		},
		FPS:      DefaultFPS,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a configuration file. Files ending in .yaml or .yml are decoded
// as YAML; anything else is read with the line grammar of ParseText.
func Load(path string, log *zap.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrConfigRead, err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg = DefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", dynamo.ErrConfigRead, path, err)
		}
	default:
		cfg, err = ParseText(bytes.NewReader(data), log)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", dynamo.ErrConfigRead, path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", dynamo.ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	return nil
}

func (c *Config) WindowDescriptor() dynamo.Window {
	return dynamo.Window{Caption: c.Window.Caption, Width: c.Window.Width, Height: c.Window.Height}
}

func (c *Config) FontDescriptor() dynamo.Font {
	size := c.Font.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	color := dynamo.White
	if len(c.Font.Color) > 0 {
		color = ColorFromSlice(c.Font.Color)
	}
	return dynamo.Font{File: c.Font.File, Size: size, Color: color}
}

// Templates converts entity records into templates. Records with an unknown
// shape kind or non-positive shape parameters are skipped and logged.
func (c *Config) Templates(log *zap.Logger) []entity.Template {
	if log == nil {
		log = zap.NewNop()
	}
	out := make([]entity.Template, 0, len(c.Entities))
	for i, ec := range c.Entities {
		t, err := ec.Template()
		if err != nil {
			log.Warn("skipping entity", zap.Int("index", i), zap.String("name", ec.Name), zap.Error(err))
			continue
		}
		out = append(out, t)
	}
	return out
}

func (ec EntityConfig) Template() (entity.Template, error) {
	s, err := ec.shape()
	if err != nil {
		return entity.Template{}, err
	}
	if !s.Valid() {
		return entity.Template{}, fmt.Errorf("%w: %v", dynamo.ErrInvalidShape, s)
	}

	e := entity.New(
		ec.Name,
		dynamo.Vec2{X: ec.Position[0], Y: ec.Position[1]},
		dynamo.Vec2{X: ec.Velocity[0], Y: ec.Velocity[1]},
		s,
		ColorFromSlice(ec.Color),
	)
	if ec.Scale > 0 {
		e.Scale = ec.Scale
	}
	if ec.Active != nil {
		e.Active = *ec.Active
	}
	return entity.Template(e), nil
}

// shape builds the entity's shape. An entry with no shape and no geometry
// gets shape.Default.
func (ec EntityConfig) shape() (shape.Shape, error) {
	if ec.Shape == "" && ec.Radius == 0 && ec.Width == 0 && ec.Height == 0 {
		return shape.Default(), nil
	}
	kind, err := shape.ParseKind(ec.Shape)
	if err != nil {
		return shape.Shape{}, err
	}
	if kind == shape.Rectangle {
		return shape.NewRectangle(ec.Width, ec.Height), nil
	}
	return shape.NewCircle(ec.Radius), nil
}

// FromTemplate is the inverse of EntityConfig.Template.
func FromTemplate(t entity.Template) EntityConfig {
	active := t.Active
	ec := EntityConfig{
		Name:     t.Name,
		Shape:    t.Shape.Kind.String(),
		Position: [2]float64{t.Position.X, t.Position.Y},
		Velocity: [2]float64{t.Velocity.X, t.Velocity.Y},
		Color:    []float64{t.Color.R, t.Color.G, t.Color.B, t.Color.A},
		Scale:    t.Scale,
		Active:   &active,
	}
	if t.Shape.Kind == shape.Rectangle {
		ec.Width, ec.Height = t.Shape.Width, t.Shape.Height
	} else {
		ec.Radius = t.Shape.Radius
	}
	return ec
}

// ColorFromSlice reads r, g, b, a from v. Missing channels are 0, except
// alpha which defaults to 1.
func ColorFromSlice(v []float64) dynamo.Color {
	c := dynamo.Color{A: 1}
	if len(v) > 0 {
		c.R = v[0]
	}
	if len(v) > 1 {
		c.G = v[1]
	}
	if len(v) > 2 {
		c.B = v[2]
	}
	if len(v) > 3 {
		c.A = v[3]
	}
	return c
}
