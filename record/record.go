// Package record defines the row model the benchmark moves through the
// encryption strategies, and a synthetic source that produces them.
package record

// FieldNames is the fixed field shape every source must produce, in
// order. Strategies rely on the shape being identical across records so
// that per-field encryption is comparable across the whole run.
var FieldNames = []string{"name", "email", "notes"}

// Field is one named value of a record.
type Field struct {
	Name  string
	Value string
}

// Record is one synthetic entity. Records are immutable once generated
// and consumed by exactly one strategy per benchmark run.
type Record struct {
	// PK is the primary key assigned at generation time.
	PK string

	Fields []Field
}

// Equal reports whether two records match field-for-field.
func (r Record) Equal(other Record) bool {
	if r.PK != other.PK || len(r.Fields) != len(other.Fields) {
		return false
	}
	for i, f := range r.Fields {
		if other.Fields[i] != f {
			return false
		}
	}
	return true
}

// Source produces n fresh records with a deterministic field shape. The
// orchestrator calls Generate once per (batch, strategy) pair.
type Source interface {
	Generate(n int) ([]Record, error)
}
