// Package viz renders the cube loop in the terminal.
//
// The viewer is a Bubble Tea program:
//
//   - [Model]: ticks the controller once per frame and draws every cubelet
//     as a wireframe with its stickers, highlighting the turning layer
//   - [Canvas]: braille pixel canvas with a highlight layer
//   - [Camera]: quaternion view with perspective projection and an idle tumble
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume (loop time stops while paused)
//	T     - Cycle color themes
//	x/y/z - Rotate the view, shifted to reverse
//	+/-   - Zoom
//	?     - Show help overlay
//	Q     - Quit
//
// Keys only change the view. The puzzle is driven by the clock alone.
package viz
