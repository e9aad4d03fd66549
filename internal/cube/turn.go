package cube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuarterTurn returns the rotation a committed turn applies to the cubelets
// of its layer: 90 degrees times dir about the layer's outward normal.
func QuarterTurn(m Move, d Direction) mgl64.Quat {
	return PartialTurn(m, float64(d))
}

// PartialTurn returns the rotation of fraction quarter turns about the
// layer's outward normal. PartialTurn(m, 1) equals QuarterTurn(m, Positive).
func PartialTurn(m Move, fraction float64) mgl64.Quat {
	return mgl64.QuatRotate(fraction*math.Pi/2, m.Normal())
}

// ApplyTurn rotates every cubelet on the layer of m by a quarter turn in
// direction d. The layer sign flips the sense, so the two outer faces of an
// axis turn opposite ways for the same d. Orientation is left-composed with
// the turn and re-normalized. Cubelets off the layer are not touched.
func ApplyTurn(cubelets []Cubelet, m Move, d Direction) {
	axis, layer := m.Axis(), m.Layer()
	j, k := axis.plane()
	s := int(d) * layer
	rot := QuarterTurn(m, d)
	for i := range cubelets {
		c := &cubelets[i]
		if c.Coord[axis] != layer {
			continue
		}
		a, b := c.Coord[j], c.Coord[k]
		c.Coord[j], c.Coord[k] = -s*b, s*a
		c.Orientation = rot.Mul(c.Orientation).Normalize()
	}
}
