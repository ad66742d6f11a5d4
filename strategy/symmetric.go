package strategy

import (
	"github.com/pkg/errors"

	"github.com/remind101/encbench/crypto/primitives"
	"github.com/remind101/encbench/record"
)

// Symmetric seals every field of every record under one key for the whole
// run. The single shared key is the scenario under test: one compromise
// exposes every row. The key lives only in this value and is zeroed by
// Close at run end.
type Symmetric struct {
	key primitives.Key
}

// NewSymmetric builds the strategy around an externally generated key, so
// the key's lifetime is visible at the call site rather than ambient
// package state.
func NewSymmetric(key primitives.Key) *Symmetric {
	return &Symmetric{key: key}
}

// GenerateSymmetric generates the run key and builds the strategy.
func GenerateSymmetric() (*Symmetric, error) {
	key, err := primitives.GenerateKey()
	if err != nil {
		return nil, err
	}
	return NewSymmetric(key), nil
}

func (*Symmetric) Name() string { return SymmetricName }

func (s *Symmetric) Encode(rec record.Record) (*StoredRow, error) {
	sealed, err := sealFields(s.key, rec.Fields)
	if err != nil {
		return nil, err
	}
	return &StoredRow{PK: rec.PK, Sealed: sealed}, nil
}

func (s *Symmetric) Decode(row *StoredRow) (record.Record, error) {
	fields, err := openFields(s.key, row.Sealed)
	if err != nil {
		return record.Record{}, err
	}
	return record.Record{PK: row.PK, Fields: fields}, nil
}

// Close releases the run key.
func (s *Symmetric) Close() error {
	s.key.Zero()
	return nil
}

func sealFields(key primitives.Key, fields []record.Field) ([]SealedField, error) {
	sealed := make([]SealedField, len(fields))
	for i, f := range fields {
		v, err := primitives.Seal(key, []byte(f.Value))
		if err != nil {
			return nil, errors.Wrapf(err, "sealing field %q", f.Name)
		}
		sealed[i] = SealedField{Name: f.Name, Value: v}
	}
	return sealed, nil
}

func openFields(key primitives.Key, sealed []SealedField) ([]record.Field, error) {
	fields := make([]record.Field, len(sealed))
	for i, f := range sealed {
		plaintext, err := primitives.Open(key, f.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "opening field %q", f.Name)
		}
		fields[i] = record.Field{Name: f.Name, Value: string(plaintext)}
	}
	return fields, nil
}
