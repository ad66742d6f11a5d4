package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remind101/encbench/bench"
)

func sampleMeasurements() []bench.Measurement {
	return []bench.Measurement{
		{
			Batch: 1000, Strategy: "plaintext",
			Write: 12 * time.Millisecond, Read: 8 * time.Millisecond,
			Throughput: 83333.33, Size: 58 * 1024,
		},
		{
			Batch: 1000, Strategy: "symmetric",
			Write: 45 * time.Millisecond, Read: 30 * time.Millisecond,
			Throughput: 22222.22, Size: 120 * 1024,
		},
		{
			Batch: 1000, Strategy: "envelope",
			Err: errors.New("unwrap key: unwrap failed"),
		},
	}
}

func TestTable(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Table(&b, sampleMeasurements()))

	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "BATCH")
	assert.Contains(t, lines[1], "plaintext")
	assert.Contains(t, lines[2], "symmetric")
	assert.Contains(t, lines[3], "FAILED: unwrap key: unwrap failed")

	// Measurement order is preserved.
	assert.True(t, strings.Index(out, "plaintext") < strings.Index(out, "symmetric"))
	assert.True(t, strings.Index(out, "symmetric") < strings.Index(out, "envelope"))
}

func TestCSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, CSV(&b, sampleMeasurements()))

	rows, err := csv.NewReader(&b).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"1000", "plaintext", "12.000", "8.000", "83333.33", "58.00", ""}, rows[1])
	assert.Equal(t, "unwrap key: unwrap failed", rows[3][6])
	assert.Equal(t, "", rows[3][2], "failed cell has no write time")
}
