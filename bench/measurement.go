package bench

import "time"

// Measurement is the result of one (batch, strategy) cell. The reporter
// contract fixes the field order downstream consumers see:
// (batch_size, strategy_name, write_ms, read_ms, throughput_tps, size_kb).
type Measurement struct {
	Batch    int
	Strategy string

	// Write is the wall-clock duration of encoding and persisting the
	// whole batch; Read covers fetching and decoding it back.
	Write time.Duration
	Read  time.Duration

	// Throughput is records per second of write time.
	Throughput float64

	// Size is the sum of the persisted byte sizes of the batch's rows.
	Size int64

	// Err is set when the cell's measurement was aborted. A failed cell
	// has no trustworthy timings.
	Err error
}

// Failed reports whether this cell's measurement was aborted.
func (m Measurement) Failed() bool { return m.Err != nil }

func (m Measurement) WriteMS() float64 {
	return float64(m.Write) / float64(time.Millisecond)
}

func (m Measurement) ReadMS() float64 {
	return float64(m.Read) / float64(time.Millisecond)
}

func (m Measurement) SizeKB() float64 {
	return float64(m.Size) / 1024
}
