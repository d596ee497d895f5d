package common

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Duration
}

func (c *fakeClock) now() time.Duration {
	return c.t
}

func TestTimerElapsedAndTotal(t *testing.T) {
	clock := &fakeClock{t: 5 * time.Second}
	timer := newTimerWithClock(clock.now)
	timer.Start()

	clock.t += 250 * time.Millisecond
	timer.Update()
	if timer.Elapsed() != 0.25 {
		t.Errorf("Elapsed should be 0.25s but was %f", timer.Elapsed())
	}
	clock.t += 500 * time.Millisecond
	timer.Update()
	if timer.Elapsed() != 0.5 || timer.Total() != 0.75 {
		t.Errorf("Expected elapsed 0.5s and total 0.75s but got %f / %f", timer.Elapsed(), timer.Total())
	}

	timer.Start()
	if timer.Elapsed() != 0 || timer.Total() != 0 {
		t.Errorf("Start should reset the timer")
	}
}

func TestTimerFPS(t *testing.T) {
	clock := &fakeClock{}
	timer := newTimerWithClock(clock.now)
	timer.Start()
	for i := 0; i < 59; i++ {
		clock.t += time.Second / 60
		timer.Update()
	}
	if timer.FPS() != 0 {
		t.Errorf("FPS should only be reported after a full second, got %d", timer.FPS())
	}
	// the 60th frame may land a hair short of a full second
	clock.t += time.Second/60 + time.Millisecond
	timer.Update()
	if timer.FPS() != 60 {
		t.Errorf("Expected 60 FPS but got %d", timer.FPS())
	}
}

func TestTimerUpdateWithoutStart(t *testing.T) {
	clock := &fakeClock{t: time.Hour}
	timer := newTimerWithClock(clock.now)
	timer.Update()
	if timer.Elapsed() != 0 {
		t.Errorf("The first update should start the timer instead of measuring from zero, got %f", timer.Elapsed())
	}
}
