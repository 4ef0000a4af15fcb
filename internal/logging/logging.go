package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LevelEnv names the environment variable that overrides the default info level.
const LevelEnv = "CHARTSYNC_LOG_LEVEL"

// Setup initializes a zerolog.Logger on stderr based on the requested format.
// format can be "text" (human-friendly console) or "json" (structured).
func Setup(format string) zerolog.Logger {
	return New(os.Stderr, format, os.Getenv(LevelEnv))
}

// New builds a logger writing to w. An empty or unparseable level means info.
func New(w io.Writer, format, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format == "text" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
