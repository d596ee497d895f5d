package main

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestShutdownHookWaitsForTeardown(t *testing.T) {
	var stopped atomic.Bool
	done := make(chan struct{})
	returned := make(chan struct{})

	go func() {
		shutdownHook(func() { stopped.Store(true) }, done)()
		close(returned)
	}()

	deadline := time.Now().Add(time.Second)
	for !stopped.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("The hook should ask the loop to stop")
		}
		time.Sleep(time.Millisecond)
	}
	select {
	case <-returned:
		t.Fatalf("The hook must not return before teardown finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Errorf("The hook should return once teardown finished")
	}
}
