// Package cli implements the lmgraph command-line interface.
//
// The commands load a landmark graph description, reduce it and export it
// (export), summarize it (stats), explore it in a terminal UI (browse) or
// serve exports over HTTP (serve). The CLI is built using cobra, styles its
// output with lipgloss and logs through charmbracelet/log.
//
// # Commands
//
//   - export: Write landmark_graph.json and optional DOT/SVG/PNG/PDF files
//   - stats: Print landmark, ordering and SCC counts as a table or JSON
//   - browse: Step through landmarks and their parents and children
//   - serve: Run the HTTP API
//   - cache: Manage the rendered diagram cache
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/lmgraph/config.toml (or --config).
// Flags always take precedence over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of a step together with its duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to milliseconds. Extra
// key/value pairs are appended.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for commands that only receive a context.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
