package anim

import "github.com/san-kum/cubeloop/internal/cube"

// State is either ShowSolved or Turning.
type State interface {
	isState()
}

// ShowSolved rests on the solved puzzle since the given elapsed time.
type ShowSolved struct {
	Since float64
}

// Turning rotates one layer; Progress runs from 0 to 1.
type Turning struct {
	Turn     cube.Turn
	Progress float64
}

func (ShowSolved) isState() {}
func (Turning) isState()    {}

// Phase summarizes where the loop is.
type Phase uint8

const (
	PhaseDwell Phase = iota
	PhaseScramble
	PhaseReverse
)

func (p Phase) String() string {
	switch p {
	case PhaseDwell:
		return "dwell"
	case PhaseScramble:
		return "scramble"
	case PhaseReverse:
		return "reverse"
	default:
		return "?"
	}
}

// History is the LIFO record of committed scramble turns.
type History struct {
	turns []cube.Turn
}

func (h *History) Push(t cube.Turn) { h.turns = append(h.turns, t) }

// Pop removes the most recent turn; ok is false when empty.
func (h *History) Pop() (t cube.Turn, ok bool) {
	if len(h.turns) == 0 {
		return cube.Turn{}, false
	}
	t = h.turns[len(h.turns)-1]
	h.turns = h.turns[:len(h.turns)-1]
	return t, true
}

// Peek returns the most recent turn without removing it.
func (h *History) Peek() (t cube.Turn, ok bool) {
	if len(h.turns) == 0 {
		return cube.Turn{}, false
	}
	return h.turns[len(h.turns)-1], true
}

func (h *History) Len() int { return len(h.turns) }

// Turns returns a copy, oldest first.
func (h *History) Turns() []cube.Turn {
	out := make([]cube.Turn, len(h.turns))
	copy(out, h.turns)
	return out
}
