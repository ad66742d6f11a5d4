package record

import "testing"

func TestSyntheticShape(t *testing.T) {
	src := NewSynthetic(1)

	records, err := src.Generate(100)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(records), 100; got != want {
		t.Fatalf("Generate => %d records; want %d", got, want)
	}

	pks := make(map[string]bool)
	for _, r := range records {
		if r.PK == "" {
			t.Fatal("record has empty primary key")
		}
		if pks[r.PK] {
			t.Fatalf("duplicate primary key %s", r.PK)
		}
		pks[r.PK] = true

		if got, want := len(r.Fields), len(FieldNames); got != want {
			t.Fatalf("record has %d fields; want %d", got, want)
		}
		for i, f := range r.Fields {
			if got, want := f.Name, FieldNames[i]; got != want {
				t.Fatalf("field %d name => %q; want %q", i, got, want)
			}
			if f.Value == "" {
				t.Fatalf("field %q has empty value", f.Name)
			}
		}
	}
}

func TestSyntheticDeterministicValues(t *testing.T) {
	a, _ := NewSynthetic(42).Generate(10)
	b, _ := NewSynthetic(42).Generate(10)

	for i := range a {
		for j := range a[i].Fields {
			if got, want := b[i].Fields[j], a[i].Fields[j]; got != want {
				t.Fatalf("record %d field %d => %v; want %v", i, j, got, want)
			}
		}
	}
}
