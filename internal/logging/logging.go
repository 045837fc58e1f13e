// Package logging configures the global slog logger for pbsnap binaries.
// Interactive terminals get tinted human-readable output; services and
// pipes get JSON.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Options selects log output behavior. Zero value means auto format at
// info level.
type Options struct {
	// Format is "auto", "text" or "json". Auto picks text on a TTY.
	Format string
	// Level is a slog level name; unknown values fall back to info.
	Level string
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Init installs the global slog logger on stderr. Call once after flag
// and config parsing.
func Init(opts Options) {
	w := os.Stderr

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
	}

	text := false
	switch strings.ToLower(opts.Format) {
	case "text", "tint", "human":
		text = true
	case "json":
		text = false
	default:
		text = IsTTY(w)
	}

	var h slog.Handler
	if text {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(h))
}
