// Package scramble draws random turns and scramble lengths.
package scramble

import (
	"math/rand"

	"github.com/san-kum/cubeloop/internal/cube"
)

// Source supplies uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generator draws turns from an injected source.
type Generator struct {
	src     Source
	redraws int
}

func New(src Source) *Generator {
	return &Generator{src: src}
}

// NewSeeded returns a generator backed by a deterministic source.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// Next draws a uniformly random turn. When exclude is non-nil, a draw that
// would undo it is rejected and redrawn. Only the single preceding turn is
// considered; longer redundant sequences are allowed.
func (g *Generator) Next(exclude *cube.Turn) cube.Turn {
	for {
		t := g.draw()
		if exclude != nil && exclude.Cancels(t) {
			g.redraws++
			continue
		}
		return t
	}
}

func (g *Generator) draw() cube.Turn {
	m := cube.Moves[g.src.Intn(cube.NumMoves)]
	d := cube.Negative
	if g.src.Intn(2) == 1 {
		d = cube.Positive
	}
	return cube.Turn{Move: m, Dir: d}
}

// Length draws a scramble length uniformly from [min, max].
func (g *Generator) Length(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.src.Intn(max-min+1)
}

// Redraws returns how many draws were rejected as cancelling.
func (g *Generator) Redraws() int { return g.redraws }
