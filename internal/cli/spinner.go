package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerOut is where spinners draw; tests replace it.
var spinnerOut io.Writer = os.Stderr

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// startSpinner animates message on w until the returned stop function is
// called or ctx ends. Stop clears the line, waits for the animation to
// finish and is safe to call more than once. On a non-terminal w nothing is
// drawn unless force is set.
func startSpinner(ctx context.Context, w io.Writer, message string, force bool) (stop func()) {
	if !force && !isTerminal(w) {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(spinnerInterval)
		defer t.Stop()

		drawn := false
		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				if drawn {
					fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len([]rune(message))+2))
				}
				return
			case <-t.C:
				fmt.Fprintf(w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]), StyleDim.Render(message))
				drawn = true
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
