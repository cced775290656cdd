// Package testutil holds small helpers shared across test packages.
package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. The poller and the
// watch loop log every fetch, which would otherwise drown test output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
