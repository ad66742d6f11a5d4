// Package store defines the storage collaborator contract the benchmark
// runs against, and backends that satisfy it. Every backend persists the
// wire encoding of stored rows and never interprets their contents; the
// strategies own construction and deconstruction.
package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/remind101/encbench/strategy"
)

// Store is one isolated storage scope. The orchestrator calls Reset
// before every (batch, strategy) measurement so earlier batches never
// inflate later size or throughput numbers.
type Store interface {
	Reset(ctx context.Context) error
	Insert(ctx context.Context, row *strategy.StoredRow) error
	FetchAll(ctx context.Context) ([]*strategy.StoredRow, error)
}

// Flusher is implemented by backends that buffer inserts into chunks.
// The orchestrator flushes inside the write-phase timing window so the
// persist cost lands where it belongs.
type Flusher interface {
	Flush(ctx context.Context) error
}

// chunkSize is how many rows buffering backends write per round trip.
const chunkSize = 500

// UnavailableError marks a collaborator-level storage failure, as opposed
// to a cryptographic one.
type UnavailableError struct {
	Backend string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable (%s): %v", e.Backend, e.Err)
}

func (e *UnavailableError) Cause() error  { return e.Err }
func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is a storage failure, unwinding any
// pkg/errors wrapping.
func IsUnavailable(err error) bool {
	if _, ok := errors.Cause(err).(*UnavailableError); ok {
		return true
	}
	var ue *UnavailableError
	return errors.As(err, &ue)
}

func unavailable(backend string, err error) error {
	return &UnavailableError{Backend: backend, Err: err}
}
