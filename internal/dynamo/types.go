package dynamo

import "fmt"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Color is RGBA with every channel in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{A: 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ColorFromBytes converts 8-bit channels to the normalized representation.
func ColorFromBytes(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Bytes converts to 8-bit channels, clamping out-of-range values.
func (c Color) Bytes() (r, g, b, a uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)
}

// Hex renders the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	r, g, b, _ := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

type Window struct {
	Caption string `json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func DefaultWindow() Window {
	return Window{Caption: "bounce", Width: 1280, Height: 800}
}

func (w Window) Valid() bool {
	return w.Width > 0 && w.Height > 0
}

// Contains reports whether box lies entirely inside the window.
func (w Window) Contains(box AABB) bool {
	return box.X >= 0 && box.Y >= 0 &&
		box.Right() <= float64(w.Width) && box.Bottom() <= float64(w.Height)
}

// AABB is an axis-aligned bounding box in window pixels, top-left origin.
type AABB struct {
	X, Y          float64
	Width, Height float64
}

// CenteredAABB returns the box of the given size centred on c.
func CenteredAABB(c Vec2, width, height float64) AABB {
	return AABB{X: c.X - width/2, Y: c.Y - height/2, Width: width, Height: height}
}

func (b AABB) Right() float64  { return b.X + b.Width }
func (b AABB) Bottom() float64 { return b.Y + b.Height }

func (b AABB) Center() Vec2 {
	return Vec2{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

type Font struct {
	File  string
	Size  int
	Color Color
}

func DefaultFont() Font {
	return Font{Size: 12, Color: White}
}
