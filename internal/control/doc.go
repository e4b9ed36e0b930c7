// Package control is the operator control panel shared by the window and
// terminal front-ends.
//
// A front-end translates its key events into an [Input] and hands it to
// [Panel.Handle] once per frame, before the simulator ticks. The panel edits
// the simulator's mirror, marking each touched field dirty, and flips the
// global toggles. [Panel.Rows] describes what to draw.
//
// Keys, by convention:
//
//	Tab / Shift-Tab   select next / previous entity
//	Up / Down         move the field cursor
//	Left / Right      adjust the field (Shift for coarse steps)
//	A                 toggle the selected entity's active flag
//	N                 rename the selected entity (Enter commits, Esc cancels)
//	1 / 2 / 3         toggle draw shapes / draw names / simulate
//	R                 reset the scene
package control
