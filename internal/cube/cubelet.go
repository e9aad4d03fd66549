package cube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Coord is a lattice position; each component is -1, 0 or 1.
type Coord [3]int

// Vec3 converts the coordinate to a float vector.
func (c Coord) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(c[0]), float64(c[1]), float64(c[2])}
}

// Cubelet is one of the 26 visible sub-cubes.
type Cubelet struct {
	ID          int
	Original    Coord
	Coord       Coord
	Orientation mgl64.Quat
}

// ColoredFaces reports which faces of the cubelet carry a sticker, in Move
// order: left, right, bottom, top, back, front. Stickers follow the solved
// position, so the result never changes.
func (c Cubelet) ColoredFaces() [NumMoves]bool {
	var faces [NumMoves]bool
	for _, m := range Moves {
		faces[m] = c.Original[m.Axis()] == m.Layer()
	}
	return faces
}

// OnLayer reports whether the cubelet belongs to the layer turned by m.
func (c Cubelet) OnLayer(m Move) bool {
	return c.Coord[m.Axis()] == m.Layer()
}

// Consistent reports whether rotating the original coordinate by the
// orientation lands on the current coordinate.
func (c Cubelet) Consistent() bool {
	v := c.Orientation.Rotate(c.Original.Vec3())
	for i := 0; i < 3; i++ {
		if int(math.Round(v[i])) != c.Coord[i] {
			return false
		}
	}
	return true
}

// SameRotation reports whether a and b describe the same rotation, every
// component agreeing within the absolute bound tol. q and -q are the same
// rotation.
func SameRotation(a, b mgl64.Quat, tol float64) bool {
	return closeQuat(a, b, tol) || closeQuat(a, b.Scale(-1), tol)
}

// closeQuat compares componentwise with an absolute bound. mgl64's
// ApproxEqualThreshold is relative and rejects tiny residues next to zero.
func closeQuat(a, b mgl64.Quat, tol float64) bool {
	if math.Abs(a.W-b.W) > tol {
		return false
	}
	for i := 0; i < 3; i++ {
		if math.Abs(a.V[i]-b.V[i]) > tol {
			return false
		}
	}
	return true
}
