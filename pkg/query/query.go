// Package query builds recent-search query descriptors from raw
// hashtags/terms and optional filters. Building is pure: no I/O, no
// clock reads beyond resolving an "until = today" boundary.
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyQuery is returned when no terms are supplied.
	ErrEmptyQuery = errors.New("query: no hashtags or terms supplied")

	// ErrInvalidRange is returned when since is after until.
	ErrInvalidRange = errors.New("query: since date is after until date")

	// ErrInvalidLimit is returned when the requested maximum is not positive.
	ErrInvalidLimit = errors.New("query: limit must be positive")
)

// The API rejects an end_time too close to the request time, so an
// "until = today" boundary is backed off by this much.
const endTimeBackoff = 20 * time.Second

// Query is an immutable search descriptor. Zero StartTime/EndTime mean
// the filter is absent.
type Query struct {
	Text       string
	Lang       string
	StartTime  time.Time
	EndTime    time.Time
	MaxResults int
}

// Params bundle the raw inputs to Build. Since and Until are
// YYYY-MM-DD strings; empty means unset.
type Params struct {
	Terms []string
	Lang  string
	Since string
	Until string
	Limit int
}

// Build validates params and produces a Query. Terms are OR-combined
// without altering the caller's casing or leading '#'. now is the
// invocation time used to resolve an until date equal to today; pass
// time.Now() outside tests.
func Build(p Params, now time.Time) (Query, error) {
	if len(p.Terms) == 0 {
		return Query{}, ErrEmptyQuery
	}
	if p.Limit <= 0 {
		return Query{}, ErrInvalidLimit
	}

	var start, end time.Time
	if p.Since != "" {
		day, err := parseDay(p.Since)
		if err != nil {
			return Query{}, fmt.Errorf("query: invalid since date %q: %w", p.Since, err)
		}
		start = day
	}
	if p.Until != "" {
		day, err := parseDay(p.Until)
		if err != nil {
			return Query{}, fmt.Errorf("query: invalid until date %q: %w", p.Until, err)
		}
		if sameDay(day, now.UTC()) {
			// "up to now" rather than excluding the current day
			end = now.UTC().Add(-endTimeBackoff)
		} else {
			end = day.Add(24*time.Hour - time.Second)
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return Query{}, ErrInvalidRange
	}

	return Query{
		Text:       buildText(p.Terms, p.Lang),
		Lang:       p.Lang,
		StartTime:  start,
		EndTime:    end,
		MaxResults: p.Limit,
	}, nil
}

// buildText composes the boolean-OR expression plus the lang clause.
func buildText(terms []string, lang string) string {
	clauses := []string{fmt.Sprintf("(%s)", strings.Join(terms, " OR "))}
	if lang != "" {
		clauses = append(clauses, "lang:"+lang)
	}
	return strings.Join(clauses, " ")
}

func parseDay(ymd string) (time.Time, error) {
	return time.Parse("2006-01-02", ymd)
}

func sameDay(day, now time.Time) bool {
	return day.Format("2006-01-02") == now.Format("2006-01-02")
}
