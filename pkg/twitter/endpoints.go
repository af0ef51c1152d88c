package twitter

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	// BaseURL is the base URL for the X API v2.
	BaseURL = "https://api.x.com"

	// RecentSearchEndpoint is the recent-search endpoint path. It only
	// covers the trailing history window, not the full archive.
	RecentSearchEndpoint = "/2/tweets/search/recent"

	// MinPageSize is the smallest max_results the endpoint accepts.
	MinPageSize = 10

	// MaxPageSize is the largest max_results the endpoint accepts.
	MaxPageSize = 100

	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 50

	tweetFields = "id,created_at,lang,public_metrics,entities,author_id"
	userFields  = "id,name,username"
	expansions  = "author_id"
)

// SearchRequest describes one page request against recent search.
type SearchRequest struct {
	Query      string
	MaxResults int
	StartTime  time.Time
	EndTime    time.Time
	NextToken  string
}

// URL builds the full request URL for a search page. The page size is
// clamped into the bounds the endpoint accepts.
func (r SearchRequest) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = BaseURL
	}

	size := r.MaxResults
	if size < MinPageSize {
		size = MinPageSize
	} else if size > MaxPageSize {
		size = MaxPageSize
	}

	params := url.Values{}
	params.Set("query", r.Query)
	params.Set("max_results", strconv.Itoa(size))
	params.Set("tweet.fields", tweetFields)
	params.Set("user.fields", userFields)
	params.Set("expansions", expansions)
	if !r.StartTime.IsZero() {
		params.Set("start_time", r.StartTime.UTC().Format(time.RFC3339))
	}
	if !r.EndTime.IsZero() {
		params.Set("end_time", r.EndTime.UTC().Format(time.RFC3339))
	}
	if r.NextToken != "" {
		params.Set("next_token", r.NextToken)
	}

	return fmt.Sprintf("%s%s?%s", baseURL, RecentSearchEndpoint, params.Encode())
}
