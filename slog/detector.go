package slog

import (
	"log/slog"
	"time"

	"github.com/filmdex/filmdex"
)

// Ensure LoggingLayoutDetector implements filmdex.LayoutDetector.
var _ filmdex.LayoutDetector = (*LoggingLayoutDetector)(nil)

// LoggingLayoutDetector wraps a LayoutDetector with debug logging.
type LoggingLayoutDetector struct {
	next   filmdex.LayoutDetector
	logger *slog.Logger
}

// NewLoggingLayoutDetector creates a new LoggingLayoutDetector.
func NewLoggingLayoutDetector(next filmdex.LayoutDetector, logger *slog.Logger) *LoggingLayoutDetector {
	return &LoggingLayoutDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the verdict.
func (d *LoggingLayoutDetector) Detect(html string) filmdex.Layout {
	begin := time.Now()
	layout := d.next.Detect(html)
	d.logger.Info("layout detection",
		"layout", string(layout),
		"duration", time.Since(begin),
	)
	return layout
}
