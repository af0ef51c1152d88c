package search

import "xsearch/pkg/models"

// Accumulator is an append-only sequence of fetched records. It
// preserves arrival order across pages and performs no deduplication;
// overlapping IDs across pages are kept as-is. The engine is its sole
// owner until the run outcome is finalized.
type Accumulator struct {
	records []models.TweetRecord
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Append adds a batch of records in order.
func (a *Accumulator) Append(batch []models.TweetRecord) {
	a.records = append(a.records, batch...)
}

// Count returns the number of accumulated records.
func (a *Accumulator) Count() int {
	return len(a.records)
}

// Snapshot returns the accumulated records in arrival order. The
// returned slice is a copy; mutating it does not affect the
// accumulator.
func (a *Accumulator) Snapshot() []models.TweetRecord {
	out := make([]models.TweetRecord, len(a.records))
	copy(out, a.records)
	return out
}
