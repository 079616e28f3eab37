// Package driverlog wires the structured logger shared by the enumeration
// driver, the report writer, and the CLI commands: a human-readable console
// handler fanned out alongside a JSON handler suitable for redirecting to a
// file, following the same "one *slog.Logger, built once, passed down"
// pattern the rest of the ambient stack uses.
package driverlog

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// Console is where human-readable log lines are written (typically
	// os.Stderr). If nil, the console handler is omitted.
	Console io.Writer
	// JSON is where structured JSON log lines are written (typically a log
	// file opened by the caller). If nil, the JSON handler is omitted.
	JSON io.Writer
	// Level is the minimum level logged by both handlers.
	Level slog.Level
}

// New builds a *slog.Logger fanning out to Console (text) and JSON
// handlers, whichever of the two are configured. If neither is set, the
// returned logger discards everything.
func New(opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: opts.Level}

	var handlers []slog.Handler
	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, hopts))
	}
	if opts.JSON != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.JSON, hopts))
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, hopts))
	case 1:
		return slog.New(handlers[0])
	default:
		return slog.New(slogmulti.Fanout(handlers...))
	}
}
