package models

import "time"

type FeedSource string

const (
	SourceTwitter FeedSource = "twitter"
	SourceReddit  FeedSource = "reddit"
)

// AllSources lists every feed source in display order.
var AllSources = []FeedSource{SourceTwitter, SourceReddit}

type FeedItem struct {
	ID        string     `json:"id"`
	Source    FeedSource `json:"source"`
	SourceID  string     `json:"sourceId"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	URL       string     `json:"url"`
	Saved     bool       `json:"saved,omitempty"`
	Reported  bool       `json:"reported,omitempty"`
}

type ReportedPost struct {
	Post      FeedItem  `json:"post"`
	Reason    string    `json:"reason"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
