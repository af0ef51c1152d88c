package search

import (
	"time"

	"xsearch/pkg/logger"
	"xsearch/pkg/models"
	"xsearch/pkg/query"
	"xsearch/pkg/ratelimit"
	"xsearch/pkg/twitter"
)

// SearchClient defines the interface for fetching search pages.
type SearchClient interface {
	Search(req twitter.SearchRequest) (*twitter.SearchResponse, error)
}

// Options configures an Engine.
type Options struct {
	// PageCap is the largest page size to request. Zero selects the
	// endpoint default.
	PageCap int

	// WaitOnRateLimit selects whether a 429 response is waited out
	// (one retry per page boundary) or accepted as a partial result.
	WaitOnRateLimit bool

	// FallbackWait is used when a 429 carries no reset hint.
	FallbackWait time.Duration

	// Limiter is an optional client-side guard over the rate window.
	Limiter ratelimit.Limiter

	// Reporter receives diagnostics. Nil disables reporting.
	Reporter Reporter

	Logger logger.Logger
}

// Engine drives the paged retrieval loop against a rate-limited,
// quota-limited search endpoint. One request is in flight at a time;
// pages are accumulated strictly in cursor order.
type Engine struct {
	client   SearchClient
	pageCap  int
	wait     bool
	fallback time.Duration
	limiter  ratelimit.Limiter
	reporter Reporter
	logger   logger.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewEngine creates an engine over client.
func NewEngine(client SearchClient, opts Options) *Engine {
	pageCap := opts.PageCap
	if pageCap <= 0 {
		pageCap = twitter.DefaultPageSize
	}
	fallback := opts.FallbackWait
	if fallback <= 0 {
		fallback = 15 * time.Minute
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	return &Engine{
		client:   client,
		pageCap:  pageCap,
		wait:     opts.WaitOnRateLimit,
		fallback: fallback,
		limiter:  opts.Limiter,
		reporter: reporter,
		logger:   log,
		sleep:    time.Sleep,
	}
}

// Run executes the retrieval loop for q and returns its outcome. The
// outcome always carries everything accumulated before termination,
// whether the run completed, hit a rate limit, or aborted.
func (e *Engine) Run(q query.Query) Outcome {
	acc := NewAccumulator()
	cursor := ""
	pages := 0
	retriedBoundary := false

	for {
		// Client-side window guard. Skipping a request the window
		// would reject keeps the quota for the next run.
		if e.limiter != nil && !e.limiter.Allow() {
			wait := e.limiter.NextAllowed()
			if !e.wait {
				e.reporter.RateLimited(wait, false)
				return e.finish(StatusPartial, acc, pages, nil)
			}
			e.reporter.RateLimited(wait, true)
			e.logger.WarnWithFields("request window exhausted, sleeping", map[string]interface{}{
				"wait": wait.Round(time.Second).String(),
			})
			e.sleep(wait)
			e.limiter.Allow()
		}

		remaining := q.MaxResults - acc.Count()
		resp, err := e.client.Search(twitter.SearchRequest{
			Query:      q.Text,
			MaxResults: e.pageSize(remaining),
			StartTime:  q.StartTime,
			EndTime:    q.EndTime,
			NextToken:  cursor,
		})
		if err != nil {
			if twitter.IsRateLimit(err) {
				if !e.wait || retriedBoundary {
					e.reporter.RateLimited(0, false)
					return e.finish(StatusPartial, acc, pages, nil)
				}
				wait := e.rateLimitWait(err)
				e.reporter.RateLimited(wait, true)
				e.logger.WarnWithFields("rate limited by API, sleeping until reset", map[string]interface{}{
					"wait":  wait.Round(time.Second).String(),
					"total": acc.Count(),
				})
				e.sleep(wait)
				retriedBoundary = true
				continue
			}
			e.logger.WithError(err).ErrorWithFields("page request failed", map[string]interface{}{
				"pages": pages,
				"total": acc.Count(),
			})
			return e.finish(StatusAborted, acc, pages, err)
		}
		retriedBoundary = false

		batch := parseRecords(resp)
		if len(batch) > remaining {
			// never over-fetch past the requested maximum
			batch = batch[:remaining]
		}
		acc.Append(batch)
		pages++
		e.reporter.Page(pages, len(batch), acc.Count(), resp.Meta.NextToken != "")

		if acc.Count() >= q.MaxResults {
			return e.finish(StatusCompleted, acc, pages, nil)
		}
		if resp.Meta.NextToken == "" {
			// no more matching data; fewer than requested is not a failure
			return e.finish(StatusCompleted, acc, pages, nil)
		}
		cursor = resp.Meta.NextToken
	}
}

// pageSize bounds the page request by the remaining quota, clamped
// into the limits the endpoint accepts. Requesting below the API floor
// is rejected, so a small remainder is over-requested and trimmed
// after decoding.
func (e *Engine) pageSize(remaining int) int {
	size := remaining
	if size > e.pageCap {
		size = e.pageCap
	}
	if size < twitter.MinPageSize {
		size = twitter.MinPageSize
	}
	return size
}

// rateLimitWait derives the sleep from the API's reset hint, falling
// back to the configured window estimate when the hint is absent.
func (e *Engine) rateLimitWait(err error) time.Duration {
	apiErr, ok := err.(*twitter.Error)
	if !ok || apiErr.RateLimitReset.IsZero() {
		return e.fallback
	}
	wait := time.Until(apiErr.RateLimitReset)
	if wait <= 0 {
		return time.Second
	}
	return wait
}

func (e *Engine) finish(status Status, acc *Accumulator, pages int, err error) Outcome {
	e.reporter.Done(status, acc.Count(), pages)
	return Outcome{
		Status: status,
		Tweets: acc.Snapshot(),
		Pages:  pages,
		Err:    err,
	}
}

// parseRecords maps one decoded page into flattened records.
func parseRecords(resp *twitter.SearchResponse) []models.TweetRecord {
	users := resp.UsersByID()
	records := make([]models.TweetRecord, 0, len(resp.Data))

	for _, t := range resp.Data {
		user := users[t.AuthorID]

		var metrics twitter.PublicMetrics
		if t.PublicMetrics != nil {
			metrics = *t.PublicMetrics
		}

		var externalURLs []string
		if t.Entities != nil {
			for _, u := range t.Entities.URLs {
				expanded := u.ExpandedURL
				if expanded == "" {
					expanded = u.URL
				}
				if expanded != "" {
					externalURLs = append(externalURLs, expanded)
				}
			}
		}

		records = append(records, models.TweetRecord{
			ID:              t.ID,
			Date:            t.CreatedAt,
			UserUsername:    user.Username,
			UserDisplayname: user.Name,
			Content:         t.Text,
			LikeCount:       metrics.LikeCount,
			RetweetCount:    metrics.RetweetCount,
			ReplyCount:      metrics.ReplyCount,
			QuoteCount:      metrics.QuoteCount,
			Lang:            t.Lang,
			URL:             models.StatusURL(t.ID),
			ExternalURLs:    externalURLs,
		})
	}

	return records
}
