package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps the global verbosity flags to a level. Quiet wins.
func levelFor(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return LogWarn
	case verbose:
		return LogDebug
	default:
		return LogInfo
	}
}

// stopwatch logs messages with the time elapsed since it was started.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

func (s stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

// lap logs an info message with a "took" field.
func (s stopwatch) lap(format string, args ...any) {
	s.logger.Info(fmt.Sprintf(format, args...), "took", s.elapsed())
}
