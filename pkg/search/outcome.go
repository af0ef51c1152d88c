package search

import "xsearch/pkg/models"

// Status tags how a run ended.
type Status int

const (
	// StatusCompleted means the requested maximum was reached or the
	// API had no more matching data. A zero-result run is Completed.
	StatusCompleted Status = iota

	// StatusPartial means the run ended early at a rate limit while
	// waiting was disabled or the single retry was used up.
	StatusPartial

	// StatusAborted means an unrecoverable error ended the run.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusPartial:
		return "partially_completed"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome is the result of one retrieval run. Tweets carries whatever
// was accumulated regardless of status: a later page's failure never
// erases earlier pages. Err is set only for StatusAborted.
type Outcome struct {
	Status Status
	Tweets []models.TweetRecord
	Pages  int
	Err    error
}
