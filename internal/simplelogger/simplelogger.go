package simplelogger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLogFile names the environment variable holding the log file path.
const EnvLogFile = "RETRANSDIFF_LOG_FILE"

// Rotation limits for the log file.
const (
	maxSizeMB  = 10
	maxBackups = 3
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a JSON-lines logger at level that appends to the file named by RETRANSDIFF_LOG_FILE, rotating it by size. The returned Closer releases the file.
//
// If RETRANSDIFF_LOG_FILE is unset/empty or names a directory, the logger is a no-op.
func New(level zerolog.Level) (zerolog.Logger, io.Closer) {
	path := strings.TrimSpace(os.Getenv(EnvLogFile))
	if path == "" {
		return zerolog.Nop(), nopCloser{}
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return zerolog.Nop(), nopCloser{}
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	return NewWithWriter(w, level), w
}

// NewWithWriter returns a JSON-lines logger at level writing to w.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel parses a level name ("debug", "info", "warn", "error", ...). The empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}
