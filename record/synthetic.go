package record

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pborman/uuid"
)

var (
	firstNames = []string{
		"Alice", "Bilal", "Carmen", "Deepa", "Elliot", "Farah", "Gustavo",
		"Hana", "Igor", "Jun", "Katya", "Lamar", "Mei", "Nadia", "Omar",
		"Priya", "Quentin", "Rosa", "Samir", "Tomoko",
	}
	lastNames = []string{
		"Abara", "Bennett", "Castillo", "Dubois", "Eriksen", "Fontaine",
		"Gupta", "Huang", "Ivanov", "Jensen", "Kimura", "Lopez", "Moreau",
		"Nakamura", "Okafor", "Park", "Quinn", "Rossi", "Silva", "Tanaka",
	}
	noteWords = []string{
		"patient", "reports", "mild", "chronic", "acute", "symptoms",
		"prescribed", "followup", "stable", "elevated", "reviewed",
		"history", "allergy", "dosage", "recovery", "monitor", "referred",
		"bloodwork", "pending", "cleared",
	}
	emailDomains = []string{"example.com", "mail.test", "clinic.example.org"}
)

// Synthetic generates fake patient records with a constant field shape:
// a person name, an email derived from it, and a short free-text note of
// roughly fifty characters. The value distribution is driven by a seeded
// source so record sizes are reproducible across runs; primary keys are
// random UUIDs.
type Synthetic struct {
	rnd *rand.Rand
}

// NewSynthetic returns a source seeded with seed.
func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{rnd: rand.New(rand.NewSource(seed))}
}

// Generate produces n fresh records.
func (s *Synthetic) Generate(n int) ([]Record, error) {
	records := make([]Record, n)
	for i := range records {
		first := firstNames[s.rnd.Intn(len(firstNames))]
		last := lastNames[s.rnd.Intn(len(lastNames))]
		name := first + " " + last
		email := fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(first), strings.ToLower(last),
			s.rnd.Intn(1000), emailDomains[s.rnd.Intn(len(emailDomains))])

		records[i] = Record{
			PK: uuid.New(),
			Fields: []Field{
				{Name: "name", Value: name},
				{Name: "email", Value: email},
				{Name: "notes", Value: s.notes()},
			},
		}
	}
	return records, nil
}

// notes builds a note of about fifty characters, mirroring the short
// free-text column of the reference dataset.
func (s *Synthetic) notes() string {
	var b strings.Builder
	for b.Len() < 50 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(noteWords[s.rnd.Intn(len(noteWords))])
	}
	return b.String()
}
