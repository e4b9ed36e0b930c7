// Package physics advances entities through the window.
//
// Movement is one explicit step per frame: the candidate position is
// position+velocity, the shape's bounding box at that candidate decides which
// velocity components reflect, and the (possibly reflected) velocity is then
// applied in the same frame.
//
// # Containment
//
// Reflection only inspects the candidate box. Position is never clamped back
// inside the window, so an entity that is already overlapping an edge, or is
// moving faster than its own size, can render partly outside for a frame or
// more before it comes back:
//
//	b := physics.Move(&e, window)
//	if b.Any() {
//	    // e.Velocity changed sign on b.X and/or b.Y
//	}
package physics
