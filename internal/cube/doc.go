// Package cube models a 3x3x3 twisting puzzle as 26 tracked cubelets.
//
// The package defines the puzzle primitives:
//
//   - [Move]: one of the six outer layers (axis + layer coordinate)
//   - [Direction]: turn handedness, -1 or +1
//   - [Turn]: a move with its direction; also the history entry type
//   - [Cubelet]: identity, original and current coordinate, orientation
//   - [ApplyTurn]: the quarter-turn rule shared by all six faces
//
// # Example
//
//	p := cube.NewPuzzle()
//	p.Apply(cube.Turn{Move: cube.Right, Dir: cube.Positive})
//	p.Apply(cube.Turn{Move: cube.Right, Dir: cube.Negative})
//	p.IsSolved() // true
//
// # Thread Safety
//
// A Puzzle is NOT thread-safe. It has exactly one owner, normally the
// animation controller, which mutates it synchronously within a tick.
package cube
