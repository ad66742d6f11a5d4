// Package reporter provides a context.Context aware abstraction for
// shuttling benchmark failures somewhere a human will see them. When the
// orchestrator is configured to keep going past a failed measurement,
// every failed cell is handed to the Reporter in the context.
package reporter

import (
	"context"

	"github.com/remind101/encbench/logger"
)

// DefaultLevel is the level used by Report.
const DefaultLevel = "error"

// Reporter handles errors that the run survives.
type Reporter interface {
	ReportWithLevel(ctx context.Context, level string, err error) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(context.Context, string, error) error

func (f ReporterFunc) ReportWithLevel(ctx context.Context, level string, err error) error {
	return f(ctx, level, err)
}

type key int

const reporterKey key = iota

// WithReporter inserts a Reporter into the context.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, reporterKey, r)
}

// FromContext extracts a Reporter from the context.
func FromContext(ctx context.Context) (Reporter, bool) {
	r, ok := ctx.Value(reporterKey).(Reporter)
	return r, ok
}

// Report reports err at the default level using the Reporter in the
// context, and is a no-op when there is none.
func Report(ctx context.Context, err error) error {
	if r, ok := FromContext(ctx); ok {
		return r.ReportWithLevel(ctx, DefaultLevel, err)
	}
	return nil
}

// NewLogReporter returns a Reporter that writes errors through the
// logger package.
func NewLogReporter() Reporter {
	return ReporterFunc(func(ctx context.Context, level string, err error) error {
		switch level {
		case "warning", "warn":
			logger.Warn(ctx, "benchmark error", "err", err)
		default:
			logger.Error(ctx, "benchmark error", "err", err)
		}
		return nil
	})
}
