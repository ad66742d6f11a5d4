package bench

import (
	"context"
	"testing"

	"github.com/remind101/encbench/crypto/primitives"
	"github.com/remind101/encbench/record"
	"github.com/remind101/encbench/store"
	"github.com/remind101/encbench/strategy"
)

func testRunner(t *testing.T, batches []int) *Runner {
	t.Helper()

	sym, err := strategy.GenerateSymmetric()
	if err != nil {
		t.Fatal(err)
	}
	w, err := primitives.GenerateRSAWrapper(primitives.DefaultRSABits)
	if err != nil {
		t.Fatal(err)
	}

	return &Runner{
		BatchSizes: batches,
		Strategies: []strategy.Strategy{
			strategy.NewPlaintext(),
			sym,
			strategy.NewEnvelope(w),
		},
		Source:   record.NewSynthetic(1),
		StoreFor: func(string) (store.Store, error) { return store.NewMemory(), nil },
	}
}

func TestRunMeasurementSequence(t *testing.T) {
	r := testRunner(t, []int{5, 10})

	ms, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		batch    int
		strategy string
	}{
		{5, strategy.PlaintextName},
		{5, strategy.SymmetricName},
		{5, strategy.EnvelopeName},
		{10, strategy.PlaintextName},
		{10, strategy.SymmetricName},
		{10, strategy.EnvelopeName},
	}
	if got := len(ms); got != len(want) {
		t.Fatalf("Run => %d measurements; want %d", got, len(want))
	}
	for i, m := range ms {
		if m.Batch != want[i].batch || m.Strategy != want[i].strategy {
			t.Fatalf("measurement %d => (%d, %s); want (%d, %s)",
				i, m.Batch, m.Strategy, want[i].batch, want[i].strategy)
		}
		if m.Failed() {
			t.Fatalf("measurement %d failed: %v", i, m.Err)
		}
		if m.Throughput <= 0 || m.Size <= 0 || m.Write <= 0 || m.Read <= 0 {
			t.Fatalf("measurement %d has empty metrics: %+v", i, m)
		}
	}
}

func TestSizeOverheadOrdering(t *testing.T) {
	r := testRunner(t, []int{50})

	ms, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	size := map[string]int64{}
	for _, m := range ms {
		size[m.Strategy] = m.Size
	}
	if !(size[strategy.PlaintextName] < size[strategy.SymmetricName]) {
		t.Fatalf("plaintext size %d not below symmetric %d",
			size[strategy.PlaintextName], size[strategy.SymmetricName])
	}
	if !(size[strategy.SymmetricName] < size[strategy.EnvelopeName]) {
		t.Fatalf("symmetric size %d not below envelope %d",
			size[strategy.SymmetricName], size[strategy.EnvelopeName])
	}
}

// Throughput ordering at batch 1000: plaintext > symmetric > envelope.
// The best of three runs per strategy smooths scheduler noise out of the
// faster cells.
func TestThroughputOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-sensitive")
	}

	best := map[string]float64{}
	for run := 0; run < 3; run++ {
		r := testRunner(t, []int{1000})
		ms, err := r.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range ms {
			if m.Throughput > best[m.Strategy] {
				best[m.Strategy] = m.Throughput
			}
		}
	}

	if !(best[strategy.PlaintextName] > best[strategy.SymmetricName]) {
		t.Fatalf("plaintext tps %.0f not above symmetric %.0f",
			best[strategy.PlaintextName], best[strategy.SymmetricName])
	}
	if !(best[strategy.SymmetricName] > best[strategy.EnvelopeName]) {
		t.Fatalf("symmetric tps %.0f not above envelope %.0f",
			best[strategy.SymmetricName], best[strategy.EnvelopeName])
	}
}

// corruptingStore flips a tag bit in one fetched row.
type corruptingStore struct {
	store.Store
	index int
}

func (c *corruptingStore) FetchAll(ctx context.Context) ([]*strategy.StoredRow, error) {
	rows, err := c.Store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if c.index < len(rows) && len(rows[c.index].Sealed) > 0 {
		rows[c.index].Sealed[0].Value.Tag[0] ^= 0x01
	}
	return rows, nil
}

// A single corrupted row among 5000 aborts the whole cell with an
// integrity failure; no measurement is recorded for it.
func TestCorruptedRowAbortsCell(t *testing.T) {
	if testing.Short() {
		t.Skip("5000 asymmetric operations")
	}

	w, err := primitives.GenerateRSAWrapper(primitives.DefaultRSABits)
	if err != nil {
		t.Fatal(err)
	}

	r := &Runner{
		BatchSizes: []int{5000},
		Strategies: []strategy.Strategy{strategy.NewEnvelope(w)},
		Source:     record.NewSynthetic(1),
		StoreFor: func(string) (store.Store, error) {
			return &corruptingStore{Store: store.NewMemory(), index: 2500}, nil
		},
	}

	ms, err := r.Run(context.Background())
	if !primitives.IsAuthenticationFailed(err) {
		t.Fatalf("Run => %v; want AuthenticationFailed", err)
	}
	if got, want := len(ms), 0; got != want {
		t.Fatalf("recorded %d measurements for aborted run; want %d", got, want)
	}
}

func TestContinueOnErrorMarksCellFailed(t *testing.T) {
	sym, err := strategy.GenerateSymmetric()
	if err != nil {
		t.Fatal(err)
	}

	r := &Runner{
		BatchSizes: []int{10, 20},
		Strategies: []strategy.Strategy{strategy.NewPlaintext(), sym},
		Source:     record.NewSynthetic(1),
		StoreFor: func(name string) (store.Store, error) {
			st := store.Store(store.NewMemory())
			if name == strategy.SymmetricName {
				st = &corruptingStore{Store: st, index: 0}
			}
			return st, nil
		},
		ContinueOnError: true,
	}

	ms, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(ms), 4; got != want {
		t.Fatalf("Run => %d measurements; want %d", got, want)
	}
	for _, m := range ms {
		failed := m.Strategy == strategy.SymmetricName
		if m.Failed() != failed {
			t.Fatalf("cell (%d, %s): Failed() => %v; want %v", m.Batch, m.Strategy, m.Failed(), failed)
		}
		if failed && !primitives.IsAuthenticationFailed(m.Err) {
			t.Fatalf("cell (%d, %s) err => %v; want AuthenticationFailed", m.Batch, m.Strategy, m.Err)
		}
	}
}

func TestSourceCountMismatch(t *testing.T) {
	r := testRunner(t, []int{10})
	r.Source = shortSource{}

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("expected error for short record source")
	}
}

type shortSource struct{}

func (shortSource) Generate(n int) ([]record.Record, error) {
	src := record.NewSynthetic(1)
	return src.Generate(n - 1)
}
