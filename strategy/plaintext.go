package strategy

import "github.com/remind101/encbench/record"

// Plaintext stores records as-is. It is the zero-overhead baseline: both
// directions are field-for-field copies with no failure modes of their
// own.
type Plaintext struct{}

func NewPlaintext() *Plaintext { return &Plaintext{} }

func (*Plaintext) Name() string { return PlaintextName }

func (*Plaintext) Encode(rec record.Record) (*StoredRow, error) {
	row := &StoredRow{PK: rec.PK, Plain: make([]record.Field, len(rec.Fields))}
	copy(row.Plain, rec.Fields)
	return row, nil
}

func (*Plaintext) Decode(row *StoredRow) (record.Record, error) {
	rec := record.Record{PK: row.PK, Fields: make([]record.Field, len(row.Plain))}
	copy(rec.Fields, row.Plain)
	return rec, nil
}
