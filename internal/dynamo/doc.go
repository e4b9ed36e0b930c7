// Package dynamo provides the value primitives shared by the bounce engine.
//
// The package defines the small plain-data types every other package speaks:
//
//   - [Vec2]: position or velocity in window pixels per frame
//   - [Color]: normalized RGBA
//   - [Window]: the single bounding rectangle entities bounce inside
//   - [AABB]: axis-aligned bounding box, top-left origin
//   - [Font]: label font descriptor, passed through to renderers untouched
//
// # Example
//
//	w := dynamo.Window{Caption: "demo", Width: 800, Height: 600}
//	box := dynamo.AABB{X: -30, Y: 280, Width: 40, Height: 40}
//	if !w.Contains(box) {
//	    // reflect
//	}
//
// All types are values. Nothing here holds pointers, so copying is always a
// deep copy.
package dynamo
