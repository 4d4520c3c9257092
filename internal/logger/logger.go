package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// ParseLevel maps DEBUG, INFO, WARN and ERROR (in any case) to a slog
// level. Anything else is INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init replaces the default logger with a text logger on stderr at the
// given level. Stdout is left to command output.
func Init(level string) {
	InitWriter(os.Stderr, level)
}

// InitWriter is Init with a caller supplied destination.
func InitWriter(w io.Writer, level string) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	defaultLogger = slog.New(h)
}

func init() {
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Logger returns the default logger instance.
func Logger() *slog.Logger {
	return defaultLogger
}

// SetLogger allows replacing the default logger (for tests or customization).
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}
