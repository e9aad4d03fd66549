package cube

import (
	"github.com/go-gl/mathgl/mgl64"
)

// NumCubelets is the number of tracked cubelets (the hidden core is skipped).
const NumCubelets = 26

// OrientationTolerance bounds floating error when comparing orientations.
const OrientationTolerance = 1e-9

// Puzzle holds the cubelets in ID order.
type Puzzle struct {
	cubelets []Cubelet
}

// NewPuzzle returns a solved puzzle. IDs follow x-major, then y, then z order.
func NewPuzzle() *Puzzle {
	p := &Puzzle{cubelets: make([]Cubelet, 0, NumCubelets)}
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				pos := Coord{x, y, z}
				p.cubelets = append(p.cubelets, Cubelet{
					ID:          id,
					Original:    pos,
					Coord:       pos,
					Orientation: mgl64.QuatIdent(),
				})
				id++
			}
		}
	}
	return p
}

// Cubelets returns the cubelets indexed by ID. The slice is owned by the
// puzzle and must be treated as read-only.
func (p *Puzzle) Cubelets() []Cubelet { return p.cubelets }

// Apply commits a quarter turn.
func (p *Puzzle) Apply(t Turn) {
	ApplyTurn(p.cubelets, t.Move, t.Dir)
}

// ApplyAll commits turns in order.
func (p *Puzzle) ApplyAll(turns []Turn) {
	for _, t := range turns {
		p.Apply(t)
	}
}

func (p *Puzzle) Clone() *Puzzle {
	c := &Puzzle{cubelets: make([]Cubelet, len(p.cubelets))}
	copy(c.cubelets, p.cubelets)
	return c
}

// IsSolved reports whether every cubelet is home with identity orientation.
func (p *Puzzle) IsSolved() bool {
	ident := mgl64.QuatIdent()
	for _, c := range p.cubelets {
		if c.Coord != c.Original {
			return false
		}
		if !SameRotation(c.Orientation, ident, OrientationTolerance) {
			return false
		}
	}
	return true
}

// Equal compares coordinates exactly and orientations within tol.
func (p *Puzzle) Equal(other *Puzzle, tol float64) bool {
	if len(p.cubelets) != len(other.cubelets) {
		return false
	}
	for i, c := range p.cubelets {
		o := other.cubelets[i]
		if c.ID != o.ID || c.Coord != o.Coord {
			return false
		}
		if !SameRotation(c.Orientation, o.Orientation, tol) {
			return false
		}
	}
	return true
}

// Layer returns the IDs of the cubelets currently on the layer turned by m.
func (p *Puzzle) Layer(m Move) []int {
	ids := make([]int, 0, 9)
	for _, c := range p.cubelets {
		if c.OnLayer(m) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Conserved reports whether the current coordinates are a permutation of
// the original ones.
func (p *Puzzle) Conserved() bool {
	seen := make(map[Coord]int, len(p.cubelets))
	for _, c := range p.cubelets {
		seen[c.Original]++
		seen[c.Coord]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}
