package domain

import (
	"fmt"
	"time"
)

// Outcome is the aggregation result for one file.
type Outcome struct {
	// Effectiveness is the percentage of successful documents, 0 to 100.
	Effectiveness float64

	// Total is the number of documents counted.
	Total int
}

// NewOutcome computes the effectiveness of successful out of total documents.
// A zero total yields zero effectiveness.
func NewOutcome(successful, total int) Outcome {
	if total <= 0 {
		return Outcome{}
	}
	return Outcome{
		Effectiveness: 100 * float64(successful) / float64(total),
		Total:         total,
	}
}

// Validate checks the outcome invariants.
func (o Outcome) Validate() error {
	switch {
	case o.Total < 0:
		return fmt.Errorf("%w: negative total %d", ErrInvalidInput, o.Total)
	case o.Effectiveness < 0 || o.Effectiveness > 100:
		return fmt.Errorf("%w: effectiveness %.2f out of range", ErrInvalidInput, o.Effectiveness)
	case o.Total == 0 && o.Effectiveness != 0:
		return fmt.Errorf("%w: effectiveness %.2f with no documents", ErrInvalidInput, o.Effectiveness)
	}
	return nil
}

// StatsRecord is one persisted outcome of processing a single file.
// Records are append-only and never updated.
type StatsRecord struct {
	// ID is assigned by the store.
	ID int64

	// File is the base name of the processed file or upload.
	File string

	// ProcessedAt is when the record was written.
	ProcessedAt time.Time

	// Effectiveness is the percentage of successful documents.
	Effectiveness float64

	// Total is the number of documents (or rows, for placeholder categories).
	Total int
}
