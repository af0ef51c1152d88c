package twitter

// SearchResponse is the decoded body of a recent-search page.
type SearchResponse struct {
	Data     []Tweet   `json:"data"`
	Includes *Includes `json:"includes,omitempty"`
	Meta     Meta      `json:"meta"`
	Errors   []APIItem `json:"errors,omitempty"`
}

// Tweet is a single post entry as returned by the API.
type Tweet struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	AuthorID      string         `json:"author_id"`
	CreatedAt     string         `json:"created_at"`
	Lang          string         `json:"lang"`
	PublicMetrics *PublicMetrics `json:"public_metrics,omitempty"`
	Entities      *Entities      `json:"entities,omitempty"`
}

// PublicMetrics carries the engagement counters for a tweet.
type PublicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	QuoteCount   int `json:"quote_count"`
}

// Entities holds the parsed entity annotations we care about.
type Entities struct {
	URLs []URLEntity `json:"urls,omitempty"`
}

// URLEntity is one URL annotation inside a tweet's text.
type URLEntity struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
	DisplayURL  string `json:"display_url"`
}

// Includes carries expanded objects referenced from the data array.
type Includes struct {
	Users []User `json:"users,omitempty"`
}

// User is an expanded author object.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Meta is the pagination envelope of a search page. An empty NextToken
// means the API has no further matching data.
type Meta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

// APIItem is a partial-error entry the API may attach to a response.
type APIItem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

// UsersByID maps the expanded users by their ID for author lookup.
func (r *SearchResponse) UsersByID() map[string]User {
	users := make(map[string]User)
	if r.Includes == nil {
		return users
	}
	for _, u := range r.Includes.Users {
		users[u.ID] = u
	}
	return users
}
