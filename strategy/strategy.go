// Package strategy implements the three pipelines under comparison:
// plaintext passthrough, single-key symmetric encryption, and per-row
// envelope encryption. All three expose the same encode/decode capability
// and are selected by configuration, so the orchestrator drives them
// uniformly.
//
// Both encrypting strategies seal each field independently with its own
// nonce and tag, matching the column-per-field layout of the reference
// dataset. The policy is fixed for the whole run so measurements are
// comparable.
package strategy

import "github.com/remind101/encbench/record"

// Strategy transforms records to stored rows and back. Encode must be the
// exact inverse of Decode for well-formed input; decode failures propagate
// to the caller, a strategy never drops a row.
type Strategy interface {
	Name() string
	Encode(rec record.Record) (*StoredRow, error)
	Decode(row *StoredRow) (record.Record, error)
}

// Strategy names, also used as storage scope names. Order fixes the
// reporting order of a run.
const (
	PlaintextName = "plaintext"
	SymmetricName = "symmetric"
	EnvelopeName  = "envelope"
)
