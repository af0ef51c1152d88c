package twitter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"xsearch/pkg/logger"
)

// Error types for X API operations
type ErrorType string

const (
	ErrorTypeTransport ErrorType = "transport"
	ErrorTypeRateLimit ErrorType = "rate_limit"
	ErrorTypeAuth      ErrorType = "auth"
	ErrorTypeMalformed ErrorType = "malformed"
	ErrorTypeBadQuery  ErrorType = "bad_query"
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error represents an X API error. For rate-limit errors,
// RateLimitReset carries the window-reset hint when the API sent one;
// a zero value means the hint was absent.
type Error struct {
	Type           ErrorType
	Message        string
	Code           int
	RateLimitReset time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("x api %s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsRateLimit reports whether err is an API rate-limit error.
func IsRateLimit(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Type == ErrorTypeRateLimit
}

// Client is a bearer-token client for the X API v2 recent-search
// endpoint. One instance is safe for sequential use by a single run.
type Client struct {
	httpClient *http.Client
	bearer     string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new API client. An empty baseURL selects the
// production endpoint.
func NewClient(bearer string, baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		bearer:  bearer,
		baseURL: baseURL,
		logger:  log,
	}
}

// Search fetches one page of recent-search results.
func (c *Client) Search(req SearchRequest) (*SearchResponse, error) {
	endpoint := req.URL(c.baseURL)

	httpReq, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.bearer)
	httpReq.Header.Set("User-Agent", "xsearch/1.0")

	start := time.Now()
	c.logger.DebugWithFields("sending search request", map[string]interface{}{
		"query":      req.Query,
		"next_token": req.NextToken,
		"page_size":  req.MaxResults,
	})

	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("search request failed", map[string]interface{}{
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &Error{
			Type:    ErrorTypeTransport,
			Message: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("search request completed", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeTransport,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse search response", map[string]interface{}{
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": preview,
		})
		return nil, &Error{
			Type:    ErrorTypeMalformed,
			Message: fmt.Sprintf("failed to parse response: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return &result, nil
}

// checkResponseStatus maps the HTTP status to a typed error.
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		c.logger.WarnWithFields("authentication error", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return &Error{
			Type:    ErrorTypeAuth,
			Message: "bearer token rejected",
			Code:    resp.StatusCode,
		}
	case http.StatusBadRequest:
		return &Error{
			Type:    ErrorTypeBadQuery,
			Message: "the API rejected the query or date range",
			Code:    resp.StatusCode,
		}
	case http.StatusTooManyRequests:
		reset := parseRateLimitReset(resp.Header)
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status": resp.StatusCode,
			"reset":  reset,
		})
		return &Error{
			Type:           ErrorTypeRateLimit,
			Message:        "rate limit exceeded",
			Code:           resp.StatusCode,
			RateLimitReset: reset,
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		c.logger.ErrorWithFields("server error", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return &Error{
			Type:    ErrorTypeServer,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		if resp.StatusCode >= 400 {
			return &Error{
				Type:    ErrorTypeUnknown,
				Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
		}
		return nil
	}
}

// parseRateLimitReset reads the x-rate-limit-reset header (epoch
// seconds). A missing or unparseable header yields the zero time.
func parseRateLimitReset(h http.Header) time.Time {
	raw := h.Get("x-rate-limit-reset")
	if raw == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(epoch, 0)
}
