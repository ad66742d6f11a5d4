package store

import (
	"context"

	"github.com/remind101/encbench/strategy"
)

// Memory is the in-process backend and the default. It keeps the wire
// encoding of every row, so decode cost and measured sizes match the
// durable backends byte for byte.
type Memory struct {
	rows [][]byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Reset(ctx context.Context) error {
	m.rows = m.rows[:0]
	return nil
}

func (m *Memory) Insert(ctx context.Context, row *strategy.StoredRow) error {
	m.rows = append(m.rows, row.EncodeBinary())
	return nil
}

func (m *Memory) FetchAll(ctx context.Context) ([]*strategy.StoredRow, error) {
	out := make([]*strategy.StoredRow, len(m.rows))
	for i, b := range m.rows {
		row, err := strategy.DecodeBinary(b)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
