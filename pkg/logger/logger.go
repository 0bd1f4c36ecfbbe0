package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide zerolog.Logger. Level is one of debug,
// info, warn, error; unrecognized values fall back to info. Pretty
// switches to console output for local development.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).
		Level(levelOrInfo(level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

// NewWithWriter builds a logger over a caller-supplied writer, used by
// tests to capture output.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(levelOrInfo(level)).
		With().
		Timestamp().
		Logger()
}

func levelOrInfo(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
