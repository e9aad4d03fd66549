package storage

import "github.com/san-kum/cubeloop/internal/cube"

// Replay applies the first n journal turns to a solved puzzle. n is
// clamped to the journal length; a negative n replays everything.
func Replay(turns []TurnRecord, n int) *cube.Puzzle {
	if n < 0 || n > len(turns) {
		n = len(turns)
	}
	p := cube.NewPuzzle()
	for _, t := range turns[:n] {
		p.Apply(t.Turn)
	}
	return p
}
