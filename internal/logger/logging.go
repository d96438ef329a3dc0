// Package logger configures charmbracelet/log for the binary and hands out
// prefixed loggers to components.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Configure sets the global level: debug shows everything with timestamps,
// otherwise only warnings and errors.
func Configure(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.WarnLevel)
	log.SetReportTimestamp(false)
}

// New creates a prefixed logger on stderr that follows the global level.
func New(prefix string) *log.Logger {
	return NewTo(os.Stderr, prefix)
}

// NewTo is New with an explicit writer.
func NewTo(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
