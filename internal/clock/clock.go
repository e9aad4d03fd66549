// Package clock provides the time readings that drive the animation loop.
package clock

import (
	"sync"
	"time"
)

// Time is one tick's reading in seconds.
type Time struct {
	Elapsed float64 // since the clock started
	Delta   float64 // since the previous reading
}

// Clock yields one reading per tick.
type Clock interface {
	Now() Time
}

// Wall reads the monotonic system clock.
type Wall struct {
	start time.Time
	last  time.Time
	now   func() time.Time
}

// NewWall starts a wall clock at the current instant.
func NewWall() *Wall {
	return newWall(time.Now)
}

func newWall(now func() time.Time) *Wall {
	t := now()
	return &Wall{start: t, last: t, now: now}
}

func (w *Wall) Now() Time {
	t := w.now()
	r := Time{
		Elapsed: t.Sub(w.start).Seconds(),
		Delta:   t.Sub(w.last).Seconds(),
	}
	w.last = t
	return r
}

// Resume shifts the clock forward so time spent paused is reported
// neither as elapsed nor as delta.
func (w *Wall) Resume(pausedFor time.Duration) {
	w.start = w.start.Add(pausedFor)
	w.last = w.last.Add(pausedFor)
}

// Fixed advances by a constant step per reading.
type Fixed struct {
	dt      float64
	elapsed float64
}

// NewFixed returns a clock that advances dt seconds per reading.
func NewFixed(dt float64) *Fixed {
	return &Fixed{dt: dt}
}

func (f *Fixed) Now() Time {
	f.elapsed += f.dt
	return Time{Elapsed: f.elapsed, Delta: f.dt}
}

// Manual provides a controllable time source for testing.
type Manual struct {
	mu      sync.Mutex
	elapsed float64
	pending float64
}

func NewManual() *Manual {
	return &Manual{}
}

// Advance moves time forward; the next reading reports it as delta.
func (m *Manual) Advance(d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elapsed += d
	m.pending += d
}

func (m *Manual) Now() Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := Time{Elapsed: m.elapsed, Delta: m.pending}
	m.pending = 0
	return r
}
