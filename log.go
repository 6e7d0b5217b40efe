package easel

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates the canvas logger with timestamp formatting. The logger
// writes to w and filters messages at the specified level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "easel",
	})
}

// loggerForTuning builds a stderr logger at the tuning's configured level.
// Unknown level strings fall back to warn, keeping the canvas quiet.
func loggerForTuning(t Tuning) *log.Logger {
	level := log.WarnLevel
	switch t.LogLevel {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}
	return NewLogger(os.Stderr, level)
}
