package models

import "fmt"

// TweetRecord is one fetched post, flattened for output.
// A record is built when a page of API results is parsed and is
// immutable afterwards; the accumulator owns it until the run's
// outcome is handed to the output writer.
type TweetRecord struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	UserUsername    string   `json:"user_username"`
	UserDisplayname string   `json:"user_displayname"`
	Content         string   `json:"content"`
	LikeCount       int      `json:"like_count"`
	RetweetCount    int      `json:"retweet_count"`
	ReplyCount      int      `json:"reply_count"`
	QuoteCount      int      `json:"quote_count"`
	Lang            string   `json:"lang"`
	URL             string   `json:"url"`
	ExternalURLs    []string `json:"external_urls"`
}

// StatusURL returns the canonical web URL for a tweet ID.
func StatusURL(id string) string {
	return fmt.Sprintf("https://x.com/i/web/status/%s", id)
}
