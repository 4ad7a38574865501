// Package viz renders a running control loop in the terminal.
//
// The live view is a Bubble Tea program drawing onto a Braille pixel canvas:
// obstacle field, traveled trails, the planner's predicted best trajectory,
// robot footprints and the active goal, next to a stats panel.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	Q     - Quit
package viz
