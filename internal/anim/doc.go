// Package anim drives the endless scramble-and-reverse loop.
//
// A [Controller] owns a puzzle and advances it once per tick:
//
//   - [ShowSolved]: the puzzle rests solved until the dwell expires
//   - [Turning]: one layer rotates at a fixed rate until a quarter turn
//     completes, then the turn is committed and the next one chosen
//
// Scramble turns are pushed onto a history stack. Once the scramble counter
// runs out, the stack is popped and each entry replayed with its direction
// negated, which returns the puzzle exactly to solved.
//
// Each tick returns a [Frame] describing every cubelet's pose, including the
// partial rotation of the layer currently turning.
package anim
