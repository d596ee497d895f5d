package common

import (
	"time"

	"github.com/loov/hrtime"
)

// Timer measures frame times with the high resolution clock. Elapsed is the time between the two most recent
// updates, FPS the number of updates counted during the last completed second.
type Timer struct {
	now func() time.Duration

	last    time.Duration
	elapsed time.Duration
	total   time.Duration

	fpsWindow time.Duration
	fpsCount  int
	fps       int

	running bool
}

func NewTimer() *Timer {
	return newTimerWithClock(hrtime.Now)
}

func newTimerWithClock(now func() time.Duration) *Timer {
	return &Timer{now: now}
}

// Start resets all counters and begins measuring from now.
func (t *Timer) Start() {
	t.last = t.now()
	t.elapsed = 0
	t.total = 0
	t.fpsWindow = 0
	t.fpsCount = 0
	t.fps = 0
	t.running = true
}

// Update marks the end of a frame.
func (t *Timer) Update() {
	if !t.running {
		t.Start()
		return
	}
	now := t.now()
	t.elapsed = now - t.last
	if t.elapsed < 0 {
		t.elapsed = 0
	}
	t.last = now
	t.total += t.elapsed

	t.fpsCount++
	t.fpsWindow += t.elapsed
	if t.fpsWindow >= time.Second {
		t.fps = t.fpsCount
		t.fpsCount = 0
		t.fpsWindow -= time.Second
	}
}

// Elapsed returns the duration of the last frame in seconds.
func (t *Timer) Elapsed() float32 {
	return float32(t.elapsed.Seconds())
}

// Total returns the time since Start in seconds.
func (t *Timer) Total() float32 {
	return float32(t.total.Seconds())
}

func (t *Timer) FPS() int {
	return t.fps
}
