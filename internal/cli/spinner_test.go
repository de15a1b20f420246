package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner(t *testing.T) {
	var buf syncBuffer
	s := startSpinner(context.Background(), &buf, "Fetching...")
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !bytes.Contains([]byte(buf.String()), []byte("Fetching...")) {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "Testing...")
	s.stop()
	s.stop()
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &syncBuffer{}, "Testing...")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner should stop when its context is cancelled")
	}
	s.stop()
}
