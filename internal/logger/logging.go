// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log on stderr, so stdout stays free for
// found strings.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a default charm log writing to w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() <= log.DebugLevel,
		TimeFormat:      time.TimeOnly,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// SetVerbosity sets the global level: debug wins over verbose, default is warn.
func SetVerbosity(debug, verbose bool) {
	log.SetOutput(os.Stderr)
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	case verbose:
		log.SetLevel(log.InfoLevel)
		log.SetReportTimestamp(false)
	default:
		log.SetLevel(log.WarnLevel)
		log.SetReportTimestamp(false)
	}
}
