// Package logging builds the slog logger shared by the CLI and the HTTP
// service. Logs go to stderr so report output on stdout stays clean.
package logging

import (
	"io"
	"log/slog"
)

// Options selects verbosity and destination.
type Options struct {
	Verbose bool
	Quiet   bool
	JSON    bool // JSON lines instead of key=value text
}

// New returns a logger writing to w. Quiet wins over Verbose.
func New(w io.Writer, opts Options) *slog.Logger {
	if opts.Quiet || w == nil {
		return slog.New(slog.DiscardHandler)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
