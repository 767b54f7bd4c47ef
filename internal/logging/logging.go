// Package logging builds the process slog handler from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Options selects the handler and minimum level.
type Options struct {
	// Format is "json", "pretty" or "auto" (pretty on a terminal, JSON otherwise).
	Format string
	// Level is "debug", "info", "warn" or "error".
	Level string
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewHandler returns a handler writing to out.
func NewHandler(out io.Writer, opts Options) (slog.Handler, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	tty := isTerminal(out)
	switch opts.Format {
	case "pretty":
		return newPretty(out, level, !tty), nil
	case "", "auto":
		if tty {
			return newPretty(out, level, false), nil
		}
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}), nil
	case "json":
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}), nil
	}
	return nil, fmt.Errorf("unknown log format %q", opts.Format)
}

// Setup installs the handler for stdout as the slog default.
func Setup(opts Options) error {
	h, err := NewHandler(os.Stdout, opts)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func newPretty(out io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
