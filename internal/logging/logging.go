package logging

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunLogger carries the logger for a single sync invocation. Every line is
// tagged with a short run id so interleaved cron runs can be told apart in
// collected output.
type RunLogger struct {
	zerolog.Logger

	RunID     string
	startTime time.Time
}

// NewRunLogger initializes logging for a new sync invocation.
func NewRunLogger() *RunLogger {
	runID := uuid.NewString()[:8]

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger := zerolog.New(out).With().
		Timestamp().
		Str("run_id", runID).
		Logger()

	return &RunLogger{
		Logger:    logger,
		RunID:     runID,
		startTime: time.Now(),
	}
}

// Elapsed returns the time spent since the run started.
func (l *RunLogger) Elapsed() time.Duration {
	return time.Since(l.startTime)
}
