// Package bench drives the strategy comparison: for every batch size and
// every strategy, in a fixed order, it times a write phase and a read
// phase against an isolated storage scope and emits one Measurement per
// cell.
//
// Everything runs strictly sequentially on one goroutine so the timing
// windows never overlap and never contend with each other.
package bench

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/remind101/encbench/logger"
	"github.com/remind101/encbench/metrics"
	"github.com/remind101/encbench/record"
	"github.com/remind101/encbench/reporter"
	"github.com/remind101/encbench/store"
	"github.com/remind101/encbench/strategy"
)

// Runner holds one benchmark run's configuration. Strategies run in slice
// order for every batch size, so reporting order is deterministic.
type Runner struct {
	BatchSizes []int
	Strategies []strategy.Strategy
	Source     record.Source

	// StoreFor returns the isolated storage scope for a strategy. It is
	// called once per strategy at the start of the run.
	StoreFor func(strategyName string) (store.Store, error)

	// ContinueOnError keeps the run going when a cell's measurement
	// aborts: the cell is recorded as failed, the error goes to the
	// reporter in ctx, and the run moves to the next cell. When false
	// the first failure halts the whole run.
	ContinueOnError bool
}

// Run executes every (batch, strategy) cell and returns the ordered
// measurement sequence. On a halting failure the measurements collected
// so far are returned alongside the error.
func (r *Runner) Run(ctx context.Context) ([]Measurement, error) {
	stores := make(map[string]store.Store, len(r.Strategies))
	for _, s := range r.Strategies {
		st, err := r.StoreFor(s.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "opening storage scope for %s", s.Name())
		}
		stores[s.Name()] = st
	}

	var measurements []Measurement
	for _, batch := range r.BatchSizes {
		for _, s := range r.Strategies {
			m, err := r.runCell(ctx, batch, s, stores[s.Name()])
			if err != nil {
				err = errors.Wrapf(err, "batch=%d strategy=%s", batch, s.Name())
				if !r.ContinueOnError {
					return measurements, err
				}
				reporter.Report(ctx, err)
				measurements = append(measurements, Measurement{
					Batch:    batch,
					Strategy: s.Name(),
					Err:      err,
				})
				continue
			}
			measurements = append(measurements, m)
		}
	}
	return measurements, nil
}

// runCell measures one (batch, strategy) pair. Any error aborts the cell;
// rows are never silently skipped, an integrity failure on a single row
// fails the whole cell.
func (r *Runner) runCell(ctx context.Context, batch int, s strategy.Strategy, st store.Store) (Measurement, error) {
	tags := map[string]string{"strategy": s.Name(), "batch": strconv.Itoa(batch)}
	logger.Info(ctx, "running cell", "strategy", s.Name(), "batch", batch)

	if err := st.Reset(ctx); err != nil {
		return Measurement{}, err
	}

	records, err := r.Source.Generate(batch)
	if err != nil {
		return Measurement{}, errors.Wrap(err, "generating records")
	}
	if len(records) != batch {
		return Measurement{}, errors.Errorf("source produced %d records; want %d", len(records), batch)
	}

	// Write phase: encode and persist every record. Buffering backends
	// flush inside the window so the persist cost is charged to writes.
	wt := metrics.Time("bench.write", tags, 1.0)
	writeStart := time.Now()
	rows := make([]*strategy.StoredRow, len(records))
	for i, rec := range records {
		row, err := s.Encode(rec)
		if err != nil {
			return Measurement{}, err
		}
		if err := st.Insert(ctx, row); err != nil {
			return Measurement{}, err
		}
		rows[i] = row
	}
	if f, ok := st.(store.Flusher); ok {
		if err := f.Flush(ctx); err != nil {
			return Measurement{}, err
		}
	}
	writeDur := time.Since(writeStart)
	wt.Done()

	// Size accounting happens between the timing windows so it skews
	// neither phase.
	var size int64
	for _, row := range rows {
		size += int64(row.WireSize())
	}
	metrics.Gauge("bench.size", float64(size), tags, 1.0)
	metrics.Count("bench.rows", int64(batch), tags, 1.0)

	// Read phase: fetch everything back and decode it.
	rt := metrics.Time("bench.read", tags, 1.0)
	readStart := time.Now()
	fetched, err := st.FetchAll(ctx)
	if err != nil {
		return Measurement{}, err
	}
	if len(fetched) != batch {
		return Measurement{}, errors.Errorf("fetched %d rows; want %d", len(fetched), batch)
	}
	for _, row := range fetched {
		if _, err := s.Decode(row); err != nil {
			return Measurement{}, err
		}
	}
	readDur := time.Since(readStart)
	rt.Done()

	m := Measurement{
		Batch:      batch,
		Strategy:   s.Name(),
		Write:      writeDur,
		Read:       readDur,
		Throughput: float64(batch) / writeDur.Seconds(),
		Size:       size,
	}
	logger.Info(ctx, "cell complete",
		"strategy", m.Strategy, "batch", m.Batch,
		"write_ms", m.WriteMS(), "read_ms", m.ReadMS(),
		"tps", m.Throughput, "size_kb", m.SizeKB())
	return m, nil
}
