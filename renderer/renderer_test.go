package renderer

import (
	"testing"
	"time"

	com "vehicle_viewer/common"
)

func TestStopEndsLoopFromAnotherGoroutine(t *testing.T) {
	r := &Renderer{core: &Core{Win: &com.Window{}}}
	if r.shouldClose() {
		t.Fatalf("A fresh renderer should keep looping")
	}

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("Stop should not block")
	}
	if !r.shouldClose() {
		t.Errorf("Loop should end once Stop was called")
	}
}

func TestWindowCloseEndsLoop(t *testing.T) {
	r := &Renderer{core: &Core{Win: &com.Window{Close: true}}}
	if !r.shouldClose() {
		t.Errorf("Closing the window should end the loop")
	}
}

func TestDestroyWithoutCore(t *testing.T) {
	r := &Renderer{}
	r.Destroy()
	r.Destroy()
}
