package testutils

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a debug level zerolog.Logger that writes to the test log.
func NewTestLogger(tb testing.TB) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: testWriter{tb}, TimeFormat: time.RFC3339, NoColor: true}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

type testWriter struct {
	tb testing.TB
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.tb.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}
