package cli

import (
	"bytes"
	"context"
	"strings"
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

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	stop := startSpinner(context.Background(), &out, "Playing 500 points...", true)
	time.Sleep(3 * spinnerInterval)
	stop()
	stop()

	s := out.String()
	if !strings.Contains(s, "Playing 500 points...") {
		t.Errorf("output = %q, want the message", s)
	}
	if !strings.HasSuffix(s, "\r") {
		t.Errorf("output should end by clearing the line: %q", s)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithTimeout(context.Background(), 2*spinnerInterval)
	defer cancel()

	stop := startSpinner(ctx, &out, "working", true)
	<-ctx.Done()

	finished := make(chan struct{})
	go func() { stop(); close(finished) }()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("stop blocked after the context ended")
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var out syncBuffer
	stop := startSpinner(context.Background(), &out, "working", false)
	time.Sleep(2 * spinnerInterval)
	stop()
	if out.String() != "" {
		t.Errorf("non-terminal output = %q, want nothing", out.String())
	}
	if isTerminal(&out) {
		t.Error("a buffer is not a terminal")
	}
}
