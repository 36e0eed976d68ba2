// Package logging configures the logrus loggers used by the CLI and by
// worker processes.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LevelEnv names the environment variable that sets the log level of worker
// processes. The CLI exports it when it starts workers.
const LevelEnv = "FIGURES_LOG_LEVEL"

// New returns a text logger for interactive use.
// Verbose loggers log at debug level, others at warn level.
func New(w io.Writer, verbose bool) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// NewWorker returns a JSON logger for worker processes, with its level read
// from LevelEnv.
func NewWorker(w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(LevelFromEnv(logrus.WarnLevel))
	return logger
}

// LevelFromEnv parses LevelEnv, falling back to def when it is unset or invalid.
func LevelFromEnv(def logrus.Level) logrus.Level {
	raw := strings.TrimSpace(os.Getenv(LevelEnv))
	if raw == "" {
		return def
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return def
	}
	return level
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
