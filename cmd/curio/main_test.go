package main

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchStepsDeliversChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walkthrough.yaml")
	if err := os.WriteFile(path, []byte("chat:\n  - id: a\n    title: A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Bool
	stop, err := watchSteps(path, func() { fired.Store(true) })
	if err != nil {
		t.Fatalf("watchSteps: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("chat:\n  - id: b\n    title: B\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for !fired.Load() {
		select {
		case <-deadline:
			t.Fatal("file change never reached the callback")
		case <-time.After(25 * time.Millisecond):
		}
	}
}
