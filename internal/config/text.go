package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseError describes one record of the line grammar that was dropped.
type ParseError struct {
	Line   int
	Record string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %s: %v", e.Line, e.Record, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Record, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

type token struct {
	text string
	line int
}

// ParseText reads the whitespace-separated record grammar:
//
//	Window    <caption> <width> <height>
//	Font      <file> <size> <r> <g> <b>
//	Rectangle <name> <x> <y> <vx> <vy> <r> <g> <b> <width> <height>
//	Circle    <name> <x> <y> <vx> <vy> <r> <g> <b> <radius>
//
// Records may span lines and appear in any order. Unknown words are skipped.
// A record that is cut short or holds a bad number is dropped and logged;
// parsing resumes at the offending token.
func ParseText(r io.Reader, log *zap.Logger) (*Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	toks, err := tokenize(r)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	p := &textParser{toks: toks}
	for p.pos < len(p.toks) {
		kw := p.toks[p.pos]
		p.pos++

		var perr *ParseError
		switch kw.text {
		case "Window":
			perr = p.window(cfg, kw)
		case "Font":
			perr = p.font(cfg, kw)
		case "Circle", "Rectangle":
			perr = p.entity(cfg, kw)
		default:
			continue
		}
		if perr != nil {
			log.Warn("dropping config record", zap.Error(perr))
		}
	}
	return cfg, nil
}

func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		for _, f := range strings.Fields(sc.Text()) {
			toks = append(toks, token{text: f, line: line})
		}
	}
	return toks, sc.Err()
}

type textParser struct {
	toks []token
	pos  int
}

func (p *textParser) fail(kw token, msg string, err error) *ParseError {
	return &ParseError{Line: kw.line, Record: kw.text, Msg: msg, Err: err}
}

func (p *textParser) word(kw token) (string, *ParseError) {
	if p.pos >= len(p.toks) {
		return "", p.fail(kw, "unexpected end of input", nil)
	}
	w := p.toks[p.pos].text
	p.pos++
	return w, nil
}

func (p *textParser) number(kw token, field string) (float64, *ParseError) {
	if p.pos >= len(p.toks) {
		return 0, p.fail(kw, "unexpected end of input reading "+field, nil)
	}
	v, err := strconv.ParseFloat(p.toks[p.pos].text, 64)
	if err != nil {
		return 0, p.fail(kw, "bad "+field, err)
	}
	p.pos++
	return v, nil
}

func (p *textParser) integer(kw token, field string) (int, *ParseError) {
	if p.pos >= len(p.toks) {
		return 0, p.fail(kw, "unexpected end of input reading "+field, nil)
	}
	v, err := strconv.Atoi(p.toks[p.pos].text)
	if err != nil {
		return 0, p.fail(kw, "bad "+field, err)
	}
	p.pos++
	return v, nil
}

func (p *textParser) floats(kw token, fields ...string) ([]float64, *ParseError) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := p.number(kw, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *textParser) window(cfg *Config, kw token) *ParseError {
	caption, err := p.word(kw)
	if err != nil {
		return err
	}
	w, err := p.integer(kw, "width")
	if err != nil {
		return err
	}
	h, err := p.integer(kw, "height")
	if err != nil {
		return err
	}
	cfg.Window = WindowConfig{Caption: caption, Width: w, Height: h}
	return nil
}

func (p *textParser) font(cfg *Config, kw token) *ParseError {
	file, err := p.word(kw)
	if err != nil {
		return err
	}
	size, err := p.integer(kw, "size")
	if err != nil {
		return err
	}
	rgb, err := p.floats(kw, "red", "green", "blue")
	if err != nil {
		return err
	}
	cfg.Font = FontConfig{File: file, Size: size, Color: append(rgb, 1)}
	return nil
}

func (p *textParser) entity(cfg *Config, kw token) *ParseError {
	name, err := p.word(kw)
	if err != nil {
		return err
	}
	v, err := p.floats(kw, "x", "y", "x velocity", "y velocity", "red", "green", "blue")
	if err != nil {
		return err
	}

	ec := EntityConfig{
		Name:     name,
		Position: [2]float64{v[0], v[1]},
		Velocity: [2]float64{v[2], v[3]},
		Color:    []float64{v[4], v[5], v[6], 1},
		Scale:    1,
	}
	if kw.text == "Rectangle" {
		dims, err := p.floats(kw, "width", "height")
		if err != nil {
			return err
		}
		ec.Shape, ec.Width, ec.Height = "rectangle", dims[0], dims[1]
	} else {
		r, err := p.number(kw, "radius")
		if err != nil {
			return err
		}
		ec.Shape, ec.Radius = "circle", r
	}
	cfg.Entities = append(cfg.Entities, ec)
	return nil
}
