// Package cli implements the img2pdf command-line interface.
//
// This package provides commands for laying out images on printable pages,
// rendering the result as PDF, SVG or PNG, previewing layouts in the
// terminal, and managing the config file and the output cache. The CLI is
// built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Lay out images and write PDF, SVG, PNG or JSON output
//   - layout: Print the page plan without rendering
//   - preview: Browse pages interactively or write one page as PNG
//   - config: Create or show the config file
//   - cache: Manage the output cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Pipeline and
// cache events are reported through observability hooks at debug level.
//
// # Example
//
//	import "github.com/Roman-/img2pdf/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 12 pages (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
