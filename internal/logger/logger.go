// Package logger builds the process-wide slog logger: colored tint output
// on a terminal, plain key=value text otherwise.
package logger

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "err", "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// New returns a logger writing to stderr at the named level
func New(level string) *slog.Logger {
	lvl := ParseLevel(level)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(newTerminalHandler(os.Stderr, lvl))
	}
	return slog.New(newTextHandler(os.Stderr, lvl))
}

func newTextHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				return slog.String(a.Key, strings.ToLower(a.Value.String()))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:    runtime.GOOS == "windows",
		AddSource:  lvl <= slog.LevelDebug,
		Level:      lvl,
		TimeFormat: "15:04:05.000",
	})
}
