// Package viz is the terminal front-end.
//
// The scene is drawn on a braille [Canvas] (2x4 dots per cell) scaled to
// fit the terminal, with the control panel beside it. Keys follow the
// control package:
//
//	tab / shift+tab   select entity
//	up / down         move the field cursor
//	left / right      adjust (shift for coarse)
//	a                 toggle active
//	n                 rename (enter commits, esc cancels)
//	1 / 2 / 3         toggle shapes / names / simulate
//	r                 reset
//	t                 cycle theme
//	q                 quit
package viz
