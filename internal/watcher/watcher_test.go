package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherHandlesTranscripts(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{}, 4)

	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, nil, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// Give the watcher a moment to enter its loop
	time.Sleep(50 * time.Millisecond)

	for _, name := range []string{"notes.txt", "talk.srt", "talk.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("handled %d transcripts before timeout, want 2", i)
		}
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 2 {
		t.Errorf("handled = %v, want talk.srt and talk.json only", handled)
	}
	for _, name := range handled {
		if name == "notes.txt" {
			t.Error("non-transcript file was handled")
		}
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, nil, 1)
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}

func TestClaim(t *testing.T) {
	w := &implWatcher{inFlight: make(map[string]struct{})}

	if !w.claim("a.srt") {
		t.Error("claim() = false on first call, want true")
	}
	if w.claim("a.srt") {
		t.Error("claim() = true while in flight, want false")
	}
	w.unclaim("a.srt")
	if !w.claim("a.srt") {
		t.Error("claim() = false after unclaim, want true")
	}
}
