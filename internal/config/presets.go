package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
)

// Presets are built-in scenes usable without a config file.
var Presets = map[string]func() *Config{
	"demo":  demoPreset,
	"crowd": crowdPreset,
	"empty": func() *Config { return DefaultConfig() },
}

func demoPreset() *Config {
	cfg := DefaultConfig()
	cfg.Window = WindowConfig{Caption: "bounce demo", Width: 1280, Height: 800}
	cfg.Entities = []EntityConfig{
		{Name: "CGreen", Shape: "circle", Radius: 50, Position: [2]float64{100, 100}, Velocity: [2]float64{-3, 2}, Color: []float64{0, 1, 0}},
		{Name: "CBlue", Shape: "circle", Radius: 100, Position: [2]float64{200, 200}, Velocity: [2]float64{2, 4}, Color: []float64{0, 0, 1}},
		{Name: "CPurple", Shape: "circle", Radius: 75, Position: [2]float64{300, 300}, Velocity: [2]float64{-2, -1}, Color: []float64{1, 0, 1}},
		{Name: "RRed", Shape: "rectangle", Width: 50, Height: 25, Position: [2]float64{200, 200}, Velocity: [2]float64{0.1, 0.15}, Color: []float64{1, 0, 0}},
		{Name: "RGrey", Shape: "rectangle", Width: 50, Height: 100, Position: [2]float64{300, 250}, Velocity: [2]float64{-0.2, 0.2}, Color: []float64{0.5, 0.5, 0.5}},
		{Name: "RTeal", Shape: "rectangle", Width: 100, Height: 100, Position: [2]float64{25, 100}, Velocity: [2]float64{-2, -2}, Color: []float64{0, 0.5, 0.5}},
	}
	return cfg
}

func crowdPreset() *Config {
	cfg := DefaultConfig()
	cfg.Window.Caption = "bounce crowd"
	const cols, rows = 6, 4
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			ec := EntityConfig{
				Name:     fmt.Sprintf("E%02d", i),
				Position: [2]float64{float64(120 + c*200), float64(120 + r*180)},
				Velocity: [2]float64{float64(1 + i%5), float64(-2 + i%4)},
				Color:    []float64{float64(c) / cols, float64(r) / rows, 0.8},
			}
			if i%2 == 0 {
				ec.Shape, ec.Radius = "circle", float64(15+i%3*10)
			} else {
				ec.Shape, ec.Width, ec.Height = "rectangle", float64(30+i%4*10), float64(20+i%3*10)
			}
			cfg.Entities = append(cfg.Entities, ec)
		}
	}
	return cfg
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
