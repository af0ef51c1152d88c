package search

import (
	"time"

	"xsearch/pkg/logger"
)

// Reporter receives per-page progress and rate-limit events. It is
// purely observational: disabling it changes no accumulated data and
// no control-flow decision.
type Reporter interface {
	// Page is called after each accumulated page.
	Page(page int, received int, total int, hasNext bool)

	// RateLimited is called on each rate-limit event. waiting tells
	// whether the engine is about to sleep for wait or is giving up
	// with partial results.
	RateLimited(wait time.Duration, waiting bool)

	// Done is called once, after the run terminates.
	Done(status Status, total int, pages int)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Page(int, int, int, bool)        {}
func (NopReporter) RateLimited(time.Duration, bool) {}
func (NopReporter) Done(Status, int, int)           {}

// LogReporter emits diagnostics through the structured logger.
type LogReporter struct {
	Logger logger.Logger
}

// NewLogReporter creates a reporter backed by log.
func NewLogReporter(log logger.Logger) *LogReporter {
	if log == nil {
		log = logger.GetLogger()
	}
	return &LogReporter{Logger: log}
}

func (r *LogReporter) Page(page int, received int, total int, hasNext bool) {
	r.Logger.InfoWithFields("page fetched", map[string]interface{}{
		"page":       page,
		"received":   received,
		"total":      total,
		"has_cursor": hasNext,
	})
}

func (r *LogReporter) RateLimited(wait time.Duration, waiting bool) {
	if waiting {
		r.Logger.WarnWithFields("rate limited, waiting for window reset", map[string]interface{}{
			"wait": wait.Round(time.Second).String(),
		})
		return
	}
	r.Logger.Warn("rate limited, waiting disabled: keeping partial results")
}

func (r *LogReporter) Done(status Status, total int, pages int) {
	r.Logger.InfoWithFields("run finished", map[string]interface{}{
		"status": status.String(),
		"total":  total,
		"pages":  pages,
	})
}
