package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/cubeloop/internal/anim"
)

// Camera projects world points onto the canvas. Orientation rotates the
// world into view space; the eye sits on +Z looking at the origin.
type Camera struct {
	Orientation mgl64.Quat
	Distance    float64
	Near        float64
	Radius      float64 // world radius that fills the shorter screen side
	Zoom        float64
}

func NewCamera() *Camera {
	tilt := mgl64.QuatRotate(0.45, mgl64.Vec3{1, 0, 0})
	turn := mgl64.QuatRotate(-0.6, mgl64.Vec3{0, 1, 0})
	return &Camera{
		Orientation: tilt.Mul(turn),
		Distance:    30,
		Near:        0.1,
		Radius:      6,
		Zoom:        1.0,
	}
}

// Rotate turns the view about a screen axis.
func (c *Camera) Rotate(axis mgl64.Vec3, angle float64) {
	c.Orientation = mgl64.QuatRotate(angle, axis).Mul(c.Orientation).Normalize()
}

func (c *Camera) RotateX(a float64) { c.Rotate(mgl64.Vec3{1, 0, 0}, a) }
func (c *Camera) RotateY(a float64) { c.Rotate(mgl64.Vec3{0, 1, 0}, a) }
func (c *Camera) RotateZ(a float64) { c.Rotate(mgl64.Vec3{0, 0, 1}, a) }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Tumble applies one frame of the slow idle rotation about the puzzle's
// own axes. t is the loop time and dt the frame delta.
func (c *Camera) Tumble(t, dt float64) {
	rx := mgl64.QuatRotate(dt*math.Sin(0.7*t+0.1), mgl64.Vec3{1, 0, 0})
	ry := mgl64.QuatRotate(dt*math.Sin(1.5*t+0.5), mgl64.Vec3{0, 1, 0})
	rz := mgl64.QuatRotate(dt*math.Sin(0.6*t-0.2), mgl64.Vec3{0, 0, 1})
	c.Orientation = c.Orientation.Mul(rx).Mul(ry).Mul(rz).Normalize()
}

// Project converts a world point to sub-pixel screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.Orientation.Rotate(p).Mul(c.Zoom)
	if rot.Z() >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z())
	pScale := float64(min(sw, sh)) / (2 * c.Radius)
	sx := int(math.Round(rot.X()*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y()*scale*pScale)) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
	Hot        bool
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0, 26*24)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3, hot bool) {
	w.Edges = append(w.Edges, Edge{s, e, hot})
}

func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

var (
	boxCorners = [8]mgl64.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	boxEdges = [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
)

// stickerInset is the sticker square's half width relative to the face.
const stickerInset = 0.6

// AddCubelet adds the box of one cubelet plus an inset square on every
// colored face, placed at the pose's world position and rotation.
func (w *Wireframe) AddCubelet(p anim.Pose, spacing, size float64) {
	pos, rot := p.World(spacing)
	half := size / 2
	place := func(local mgl64.Vec3) mgl64.Vec3 {
		return rot.Rotate(local.Mul(half)).Add(pos)
	}

	for _, e := range boxEdges {
		w.AddEdge(place(boxCorners[e[0]]), place(boxCorners[e[1]]), p.OnLayer)
	}

	for axis := 0; axis < 3; axis++ {
		u, v := (axis+1)%3, (axis+2)%3
		for _, side := range [2]int{-1, 1} {
			if p.Original[axis] != side {
				continue
			}
			var sq [4]mgl64.Vec3
			for i, uv := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
				sq[i][axis] = float64(side)
				sq[i][u] = uv[0] * stickerInset
				sq[i][v] = uv[1] * stickerInset
			}
			for i := range sq {
				w.AddEdge(place(sq[i]), place(sq[(i+1)%4]), p.OnLayer)
			}
		}
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	hot            bool
}

// Render3D draws the wireframe to the canvas far edges first.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Hot})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.SetPen(e.hot)
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
	c.SetPen(false)
}
