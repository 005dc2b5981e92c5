// Command chaosgame draws fractal attractors with restricted chaos games.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/chaosgame/internal/cli"
	cgerrors "github.com/matzehuels/chaosgame/pkg/errors"
)

// exitInterrupted is what shells report for a process ended by SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// exitCode reports err on w and returns the process exit status.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled), cgerrors.Is(err, cgerrors.ErrCodeCanceled):
		return exitInterrupted
	}
	fmt.Fprintln(w, "Error:", cgerrors.UserMessage(err))
	return 1
}
