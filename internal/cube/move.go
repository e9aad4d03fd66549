package cube

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is one of the three cardinal axes.
type Axis uint8

const (
	X Axis = 0
	Y Axis = 1
	Z Axis = 2
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector of the axis.
func (a Axis) Unit() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

// plane lists the two non-axis coordinate slots in cyclic order, so that a
// positive quarter turn maps (plane[0], plane[1]) to (-plane[1], plane[0]).
func (a Axis) plane() (int, int) {
	switch a {
	case X:
		return 1, 2
	case Y:
		return 2, 0
	default:
		return 0, 1
	}
}

// Move names one of the six outer layers. The axis is index/2 and the layer
// coordinate is -1 for even indices and +1 for odd ones.
type Move uint8

const (
	Left Move = iota
	Right
	Bottom
	Top
	Back
	Front
)

// NumMoves is the number of distinct moves.
const NumMoves = 6

// Moves lists every move in index order.
var Moves = [NumMoves]Move{Left, Right, Bottom, Top, Back, Front}

func (m Move) Axis() Axis { return Axis(m / 2) }

// Layer returns the coordinate shared by all cubelets of the layer.
func (m Move) Layer() int {
	if m%2 == 0 {
		return -1
	}
	return 1
}

// Normal returns the outward normal of the layer, the axis a positive
// direction turns about.
func (m Move) Normal() mgl64.Vec3 {
	return m.Axis().Unit().Mul(float64(m.Layer()))
}

func (m Move) String() string {
	switch m {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	case Top:
		return "Top"
	case Back:
		return "Back"
	case Front:
		return "Front"
	default:
		return "?"
	}
}

// ParseMove is the inverse of Move.String.
func ParseMove(s string) (Move, error) {
	for _, m := range Moves {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("cube: unknown move %q", s)
}

// Direction is the handedness of a turn.
type Direction int8

const (
	Negative Direction = -1
	Positive Direction = 1
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction { return -d }

func (d Direction) String() string {
	if d < 0 {
		return "-1"
	}
	return "+1"
}

// ParseDirection accepts the forms produced by Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "+1", "1":
		return Positive, nil
	case "-1":
		return Negative, nil
	}
	return 0, fmt.Errorf("cube: unknown direction %q", s)
}

// Turn is a quarter turn of one layer.
type Turn struct {
	Move Move      `json:"move"`
	Dir  Direction `json:"dir"`
}

// Inverse returns the turn that cancels t.
func (t Turn) Inverse() Turn {
	return Turn{Move: t.Move, Dir: t.Dir.Reverse()}
}

// Cancels reports whether other undoes t.
func (t Turn) Cancels(other Turn) bool {
	return t.Move == other.Move && t.Dir == -other.Dir
}

func (t Turn) String() string {
	return fmt.Sprintf("%s%s", t.Move, t.Dir)
}
