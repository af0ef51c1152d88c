package twitter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-token", server.URL, 5*time.Second, nil)
	return server, client
}

func TestSearchDecodesPage(t *testing.T) {
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, RecentSearchEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "(#Fabry) lang:es", r.URL.Query().Get("query"))
		assert.Equal(t, "50", r.URL.Query().Get("max_results"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{
					"id": "1951234567890",
					"text": "living with #Fabry",
					"author_id": "42",
					"created_at": "2026-08-30T10:15:00.000Z",
					"lang": "es",
					"public_metrics": {"like_count": 3, "retweet_count": 1, "reply_count": 0, "quote_count": 2},
					"entities": {"urls": [{"url": "https://t.co/x", "expanded_url": "https://example.org/fabry"}]}
				}
			],
			"includes": {"users": [{"id": "42", "name": "Ana", "username": "ana_f"}]},
			"meta": {"newest_id": "1951234567890", "oldest_id": "1951234567890", "result_count": 1, "next_token": "b26v89c19"}
		}`)
	})

	resp, err := client.Search(SearchRequest{Query: "(#Fabry) lang:es", MaxResults: 50})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	tweet := resp.Data[0]
	assert.Equal(t, "1951234567890", tweet.ID)
	assert.Equal(t, "living with #Fabry", tweet.Text)
	assert.Equal(t, "es", tweet.Lang)
	require.NotNil(t, tweet.PublicMetrics)
	assert.Equal(t, 3, tweet.PublicMetrics.LikeCount)
	require.NotNil(t, tweet.Entities)
	assert.Equal(t, "https://example.org/fabry", tweet.Entities.URLs[0].ExpandedURL)

	users := resp.UsersByID()
	assert.Equal(t, "ana_f", users["42"].Username)

	assert.Equal(t, 1, resp.Meta.ResultCount)
	assert.Equal(t, "b26v89c19", resp.Meta.NextToken)
}

func TestSearchRateLimitCarriesResetHint(t *testing.T) {
	reset := time.Now().Add(10 * time.Minute).Unix()
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-rate-limit-remaining", "0")
		w.Header().Set("x-rate-limit-reset", fmt.Sprintf("%d", reset))
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(SearchRequest{Query: "(#Fabry)", MaxResults: 10})
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeRateLimit, apiErr.Type)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Code)
	assert.Equal(t, time.Unix(reset, 0), apiErr.RateLimitReset)
	assert.True(t, IsRateLimit(err))
}

func TestSearchRateLimitWithoutHint(t *testing.T) {
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(SearchRequest{Query: "(#Fabry)", MaxResults: 10})
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeRateLimit, apiErr.Type)
	assert.True(t, apiErr.RateLimitReset.IsZero())
}

func TestSearchStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, ErrorTypeAuth},
		{"forbidden", http.StatusForbidden, ErrorTypeAuth},
		{"bad request", http.StatusBadRequest, ErrorTypeBadQuery},
		{"server error", http.StatusInternalServerError, ErrorTypeServer},
		{"bad gateway", http.StatusBadGateway, ErrorTypeServer},
		{"teapot", http.StatusTeapot, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Search(SearchRequest{Query: "(#Fabry)", MaxResults: 10})
			require.Error(t, err)

			apiErr, ok := err.(*Error)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, tt.status, apiErr.Code)
			assert.False(t, IsRateLimit(err))
		})
	}
}

func TestSearchMalformedBody(t *testing.T) {
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": "this is not an array"`)
	})

	_, err := client.Search(SearchRequest{Query: "(#Fabry)", MaxResults: 10})
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeMalformed, apiErr.Type)
}

func TestSearchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient("test-token", server.URL, time.Second, nil)
	_, err := client.Search(SearchRequest{Query: "(#Fabry)", MaxResults: 10})
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeTransport, apiErr.Type)
}

func TestSearchEmptyResult(t *testing.T) {
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{Meta: Meta{ResultCount: 0}})
	})

	resp, err := client.Search(SearchRequest{Query: "(#NoSuchTag)", MaxResults: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, "", resp.Meta.NextToken)
}
