// Package logging builds the zerolog loggers used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewLogger creates a logger writing to out. level is a zerolog level name such as debug or warn.
// format is FormatConsole for human readable output or FormatJSON for one JSON object per line.
func NewLogger(level string, format string, out io.Writer) (zerolog.Logger, error) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q, expected %s or %s", format, FormatConsole, FormatJSON)
	}

	return zerolog.New(out).Level(l).With().Timestamp().Caller().Logger(), nil
}
