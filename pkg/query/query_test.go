package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildText(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		params   Params
		wantText string
	}{
		{
			name:     "single term",
			params:   Params{Terms: []string{"#Fabry"}, Limit: 10},
			wantText: "(#Fabry)",
		},
		{
			name:     "multiple terms OR combined",
			params:   Params{Terms: []string{"#Fabry", "#FabryDisease", "GLP-1"}, Limit: 10},
			wantText: "(#Fabry OR #FabryDisease OR GLP-1)",
		},
		{
			name:     "language clause appended",
			params:   Params{Terms: []string{"#Ozempic"}, Lang: "es", Limit: 10},
			wantText: "(#Ozempic) lang:es",
		},
		{
			name:     "casing and hash preserved",
			params:   Params{Terms: []string{"#FabryEspañol", "wEiRdCase"}, Limit: 10},
			wantText: "(#FabryEspañol OR wEiRdCase)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Build(tt.params, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, q.Text)
		})
	}
}

func TestBuildValidation(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{
			name:    "no terms",
			params:  Params{Limit: 10},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "zero limit",
			params:  Params{Terms: []string{"#Fabry"}, Limit: 0},
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "negative limit",
			params:  Params{Terms: []string{"#Fabry"}, Limit: -5},
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "since after until",
			params:  Params{Terms: []string{"#Fabry"}, Since: "2024-01-10", Until: "2024-01-01", Limit: 10},
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.params, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildBadDates(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	_, err := Build(Params{Terms: []string{"#Fabry"}, Since: "31-08-2026", Limit: 10}, now)
	assert.Error(t, err)

	_, err = Build(Params{Terms: []string{"#Fabry"}, Until: "not-a-date", Limit: 10}, now)
	assert.Error(t, err)
}

func TestBuildDateBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("since resolves to midnight", func(t *testing.T) {
		q, err := Build(Params{Terms: []string{"#Fabry"}, Since: "2026-08-20", Limit: 10}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), q.StartTime)
	})

	t.Run("past until resolves to end of day", func(t *testing.T) {
		q, err := Build(Params{Terms: []string{"#Fabry"}, Until: "2026-08-25", Limit: 10}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 25, 23, 59, 59, 0, time.UTC), q.EndTime)
	})

	t.Run("until today resolves to now, not midnight", func(t *testing.T) {
		q, err := Build(Params{Terms: []string{"#Fabry"}, Until: "2026-08-31", Limit: 10}, now)
		require.NoError(t, err)

		// the boundary lands within the invocation day, just behind now
		assert.Equal(t, "2026-08-31", q.EndTime.Format("2006-01-02"))
		assert.True(t, q.EndTime.Before(now))
		assert.True(t, now.Sub(q.EndTime) < time.Minute)
	})

	t.Run("no dates leaves zero times", func(t *testing.T) {
		q, err := Build(Params{Terms: []string{"#Fabry"}, Limit: 10}, now)
		require.NoError(t, err)
		assert.True(t, q.StartTime.IsZero())
		assert.True(t, q.EndTime.IsZero())
	})

	t.Run("same day range is valid", func(t *testing.T) {
		q, err := Build(Params{Terms: []string{"#Fabry"}, Since: "2026-08-25", Until: "2026-08-25", Limit: 10}, now)
		require.NoError(t, err)
		assert.True(t, q.StartTime.Before(q.EndTime))
	})
}
