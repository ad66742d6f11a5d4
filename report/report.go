// Package report renders the measurement sequence for humans and for
// export. It consumes measurements in the order the orchestrator emitted
// them and preserves the documented field order:
// batch_size, strategy_name, write_ms, read_ms, throughput_tps, size_kb.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/remind101/encbench/bench"
)

// Table writes a fixed-order results table. Failed cells print their
// failure reason in place of metrics.
func Table(w io.Writer, ms []bench.Measurement) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "BATCH\tSTRATEGY\tWRITE (MS)\tREAD (MS)\tTPS\tSIZE (KB)")
	for _, m := range ms {
		if m.Failed() {
			fmt.Fprintf(tw, "%d\t%s\tFAILED: %v\t\t\t\n", m.Batch, m.Strategy, m.Err)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			m.Batch, m.Strategy, m.WriteMS(), m.ReadMS(), m.Throughput, m.SizeKB())
	}

	return errors.Wrap(tw.Flush(), "writing results table")
}

// CSVHeader is the export column order. The trailing error column is
// empty for successful cells.
var CSVHeader = []string{
	"batch_size", "strategy_name", "write_ms", "read_ms", "throughput_tps", "size_kb", "error",
}

// CSV writes the measurement sequence with one header row.
func CSV(w io.Writer, ms []bench.Measurement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, m := range ms {
		row := []string{
			strconv.Itoa(m.Batch),
			m.Strategy,
			"", "", "", "", "",
		}
		if m.Failed() {
			row[6] = m.Err.Error()
		} else {
			row[2] = strconv.FormatFloat(m.WriteMS(), 'f', 3, 64)
			row[3] = strconv.FormatFloat(m.ReadMS(), 'f', 3, 64)
			row[4] = strconv.FormatFloat(m.Throughput, 'f', 2, 64)
			row[5] = strconv.FormatFloat(m.SizeKB(), 'f', 2, 64)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
