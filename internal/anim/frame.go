package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/cubeloop/internal/cube"
)

// TurnDelta is the partial rotation of a layer that is mid-turn.
type TurnDelta struct {
	Axis     mgl64.Vec3 // outward normal of the turning layer
	Fraction float64    // signed quarter turns completed, direction * progress
}

// Rotation returns the delta as a quaternion.
func (d TurnDelta) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(d.Fraction*math.Pi/2, d.Axis)
}

// Pose is what the presentation layer needs to draw one cubelet.
type Pose struct {
	ID          int
	Original    cube.Coord
	Coord       cube.Coord
	Orientation mgl64.Quat
	OnLayer     bool
	Delta       *TurnDelta // nil unless OnLayer
}

// World returns the cubelet's position and rotation with the partial turn
// composed on top of the settled pose. spacing is the distance between
// neighbouring cubelet centers.
func (p Pose) World(spacing float64) (mgl64.Vec3, mgl64.Quat) {
	pos := p.Coord.Vec3().Mul(spacing)
	rot := p.Orientation
	if p.Delta != nil {
		d := p.Delta.Rotation()
		pos = d.Rotate(pos)
		rot = d.Mul(rot)
	}
	return pos, rot
}

// Commit records one committed quarter turn.
type Commit struct {
	Time     float64   `json:"time"`
	Turn     cube.Turn `json:"turn"`
	Scramble bool      `json:"scramble"`
	Depth    int       `json:"depth"` // history depth after the commit
}

// Frame is the controller's output for one tick.
type Frame struct {
	Time      float64
	Phase     Phase
	Active    *cube.Turn // nil while dwelling or right after a commit
	Progress  float64
	Remaining int // scramble turns still to draw
	Depth     int // history stack length
	Cycles    int // completed scramble-and-reverse cycles
	Commit    *Commit
	Solved    bool // the puzzle was re-solved this tick
	Poses     []Pose
}
