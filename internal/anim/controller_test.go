package anim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/cube"
	"github.com/san-kum/cubeloop/internal/scramble"
)

// dt is exact in binary, so four ticks make one quarter turn at rate 1.
const dt = 0.25

func newController(seed int64, cfg anim.Config) *anim.Controller {
	return anim.New(cube.NewPuzzle(), scramble.NewSeeded(seed), cfg)
}

// tickUntil ticks c with a fixed clock until stop returns true or limit
// ticks pass, returning every frame.
func tickUntil(c *anim.Controller, clk clock.Clock, limit int, stop func(anim.Frame) bool) []anim.Frame {
	frames := make([]anim.Frame, 0, limit)
	for i := 0; i < limit; i++ {
		f := c.Tick(clk.Now())
		frames = append(frames, f)
		if stop(f) {
			break
		}
	}
	return frames
}

func commits(frames []anim.Frame) []anim.Commit {
	out := make([]anim.Commit, 0)
	for _, f := range frames {
		if f.Commit != nil {
			out = append(out, *f.Commit)
		}
	}
	return out
}

var _ = Describe("Controller", func() {
	var cfg anim.Config

	BeforeEach(func() {
		cfg = anim.DefaultConfig()
	})

	Describe("dwelling", func() {
		It("starts solved and idle", func() {
			c := newController(1, cfg)
			Expect(c.State()).To(Equal(anim.ShowSolved{Since: 0}))

			f := c.Tick(clock.Time{Elapsed: 1, Delta: 1})
			Expect(f.Phase).To(Equal(anim.PhaseDwell))
			Expect(f.Active).To(BeNil())
			Expect(f.Poses).To(HaveLen(cube.NumCubelets))
			for _, p := range f.Poses {
				Expect(p.OnLayer).To(BeFalse())
				Expect(p.Delta).To(BeNil())
			}
		})

		It("stays put until the dwell expires", func() {
			c := newController(1, cfg)
			c.Tick(clock.Time{Elapsed: 2.9, Delta: 2.9})
			Expect(c.State()).To(BeAssignableToTypeOf(anim.ShowSolved{}))

			f := c.Tick(clock.Time{Elapsed: 3.0, Delta: 0.1})
			Expect(c.State()).To(BeAssignableToTypeOf(anim.Turning{}))
			Expect(f.Phase).To(Equal(anim.PhaseScramble))
			Expect(f.Active).NotTo(BeNil())
			Expect(f.Progress).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("draws the scramble length from the configured range", func() {
			cfg.MinSteps, cfg.MaxSteps = 6, 9
			for seed := int64(0); seed < 50; seed++ {
				c := newController(seed, cfg)
				c.Tick(clock.Time{Elapsed: cfg.Dwell, Delta: 0})
				Expect(c.CycleLength()).To(SatisfyAll(
					BeNumerically(">=", 6),
					BeNumerically("<=", 9),
				))
			}
		})
	})

	Describe("turning", func() {
		It("commits exactly once per quarter turn", func() {
			c := newController(2, cfg)
			c.Tick(clock.Time{Elapsed: cfg.Dwell, Delta: 0})

			clk := clock.NewFixed(dt)
			frames := tickUntil(c, clk, 4, func(anim.Frame) bool { return false })
			Expect(frames[0].Commit).To(BeNil())
			Expect(frames[1].Commit).To(BeNil())
			Expect(frames[2].Commit).To(BeNil())
			Expect(frames[3].Commit).NotTo(BeNil())
			Expect(frames[3].Active).To(BeNil())
			Expect(frames[3].Progress).To(BeZero())
		})

		It("exposes the partial rotation of the active layer only", func() {
			c := newController(3, cfg)
			f := c.Tick(clock.Time{Elapsed: cfg.Dwell, Delta: 0.5})
			Expect(f.Active).NotTo(BeNil())
			turn := *f.Active

			onLayer := 0
			for _, p := range f.Poses {
				if p.Coord[turn.Move.Axis()] != turn.Move.Layer() {
					Expect(p.OnLayer).To(BeFalse())
					Expect(p.Delta).To(BeNil())
					continue
				}
				onLayer++
				Expect(p.OnLayer).To(BeTrue())
				Expect(p.Delta).NotTo(BeNil())
				Expect(p.Delta.Axis).To(Equal(turn.Move.Normal()))
				Expect(p.Delta.Fraction).To(BeNumerically("~", 0.5*float64(turn.Dir), 1e-12))
			}
			Expect(onLayer).To(Equal(9))
		})

		It("lands the animated pose on the committed pose", func() {
			c := newController(4, cfg)
			f := c.Tick(clock.Time{Elapsed: cfg.Dwell, Delta: 0})
			turn := *f.Active

			before := f.Poses
			after := c.Tick(clock.Time{Elapsed: cfg.Dwell + 1, Delta: 1}).Poses
			for i, p := range before {
				if !p.OnLayer {
					Expect(after[i]).To(Equal(p))
					continue
				}
				almost := p
				almost.Delta = &anim.TurnDelta{Axis: turn.Move.Normal(), Fraction: float64(turn.Dir)}
				pos, rot := almost.World(2)
				wantPos, wantRot := after[i].World(2)
				Expect(pos.Sub(wantPos).Len()).To(BeNumerically("<", 1e-9))
				Expect(cube.SameRotation(rot, wantRot, 1e-9)).To(BeTrue())
			}
		})
	})

	Describe("a full cycle", func() {
		BeforeEach(func() {
			cfg.MinSteps, cfg.MaxSteps = 5, 5
		})

		It("records five turns and reverses them", func() {
			c := newController(5, cfg)
			c.Tick(clock.Time{Elapsed: cfg.Dwell, Delta: 0})
			clk := clock.NewFixed(dt)

			frames := tickUntil(c, clk, 1000, func(f anim.Frame) bool {
				return f.Commit != nil && f.Commit.Depth == 5 && f.Remaining == 0
			})
			scrambled := commits(frames)
			Expect(scrambled).To(HaveLen(5))
			Expect(c.History()).To(HaveLen(5))
			for _, cm := range scrambled {
				Expect(cm.Scramble).To(BeTrue())
			}
			Expect(c.Puzzle().IsSolved()).To(BeFalse())

			frames = tickUntil(c, clk, 1000, func(f anim.Frame) bool { return f.Solved })
			reversed := commits(frames)
			Expect(reversed).To(HaveLen(5))
			Expect(c.History()).To(BeEmpty())
			Expect(c.Puzzle().IsSolved()).To(BeTrue())
			Expect(c.Cycles()).To(Equal(1))
			Expect(c.State()).To(BeAssignableToTypeOf(anim.ShowSolved{}))

			for i, cm := range reversed {
				Expect(cm.Scramble).To(BeFalse())
				Expect(cm.Turn).To(Equal(scrambled[len(scrambled)-1-i].Turn.Inverse()))
				Expect(cm.Depth).To(Equal(4 - i))
			}
		})

		It("never draws a turn that cancels the previous scramble turn", func() {
			cfg.MinSteps, cfg.MaxSteps = 4, 15
			c := newController(6, cfg)
			clk := clock.NewFixed(dt)
			frames := tickUntil(c, clk, 20000, func(f anim.Frame) bool { return f.Cycles == 20 })
			Expect(c.Cycles()).To(Equal(20))

			var prev *anim.Commit
			for _, cm := range commits(frames) {
				if prev != nil && prev.Scramble && cm.Scramble {
					Expect(prev.Turn.Cancels(cm.Turn)).To(BeFalse())
				}
				cm := cm
				prev = &cm
			}
		})

		It("rests for the dwell before the next cycle", func() {
			c := newController(7, cfg)
			clk := clock.NewFixed(dt)
			frames := tickUntil(c, clk, 1000, func(f anim.Frame) bool { return f.Solved })
			solvedAt := frames[len(frames)-1].Time

			frames = tickUntil(c, clk, 1000, func(f anim.Frame) bool { return f.Phase != anim.PhaseDwell })
			started := frames[len(frames)-1].Time
			Expect(started - solvedAt).To(BeNumerically("~", cfg.Dwell, 1e-9))
		})
	})

	Describe("invariants over a long run", func() {
		It("keeps history bounded and returns to solved every cycle", func() {
			c := newController(8, cfg)
			clk := clock.NewFixed(1.0 / 60)
			for i := 0; i < 60*600; i++ {
				f := c.Tick(clk.Now())
				Expect(f.Depth).To(BeNumerically("<=", c.CycleLength()))
				if f.Commit != nil {
					Expect(c.Puzzle().Conserved()).To(BeTrue())
				}
				if f.Solved {
					Expect(f.Depth).To(BeZero())
					Expect(c.Puzzle().IsSolved()).To(BeTrue())
				}
			}
			Expect(c.Cycles()).To(BeNumerically(">", 5))
			for _, cl := range c.Puzzle().Cubelets() {
				Expect(math.Abs(cl.Orientation.Len() - 1)).To(BeNumerically("<", 1e-12))
			}
		})

		It("is deterministic for a seed", func() {
			a, b := newController(9, cfg), newController(9, cfg)
			ca, cb := clock.NewFixed(0.1), clock.NewFixed(0.1)
			fa := tickUntil(a, ca, 3000, func(anim.Frame) bool { return false })
			fb := tickUntil(b, cb, 3000, func(anim.Frame) bool { return false })
			Expect(commits(fa)).To(Equal(commits(fb)))
		})
	})
})

var _ = Describe("History", func() {
	It("pops in LIFO order", func() {
		var h anim.History
		h.Push(cube.Turn{Move: cube.Left, Dir: cube.Positive})
		h.Push(cube.Turn{Move: cube.Top, Dir: cube.Negative})
		Expect(h.Len()).To(Equal(2))

		t, ok := h.Pop()
		Expect(ok).To(BeTrue())
		Expect(t.Move).To(Equal(cube.Top))

		t, ok = h.Pop()
		Expect(ok).To(BeTrue())
		Expect(t.Move).To(Equal(cube.Left))

		_, ok = h.Pop()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("RestPoses", func() {
	It("mirrors the puzzle with no layer in motion", func() {
		p := cube.NewPuzzle()
		p.Apply(cube.Turn{Move: cube.Front, Dir: cube.Positive})

		poses := anim.RestPoses(p)
		Expect(poses).To(HaveLen(cube.NumCubelets))
		for i, pose := range poses {
			cl := p.Cubelets()[i]
			Expect(pose.Coord).To(Equal(cl.Coord))
			Expect(pose.OnLayer).To(BeFalse())
			Expect(pose.Delta).To(BeNil())
		}
	})
})
