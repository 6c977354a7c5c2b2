package rpc

import "github.com/dmitrijs2005/creatorhub/internal/models"

type Empty struct{}

type CreditsResponse struct {
	Credits int64 `json:"credits"`
}

type TransactionsResponse struct {
	Transactions []models.CreditTransaction `json:"transactions"`
}

type AdjustCreditsRequest struct {
	UserID  string `json:"userId"`
	Credits int64  `json:"credits"`
}

type TransactionResponse struct {
	Transaction models.CreditTransaction `json:"transaction"`
}

type UsersResponse struct {
	Users []*models.User `json:"users"`
}

type FetchFeedRequest struct {
	Sources []models.FeedSource `json:"sources,omitempty"`
}

type FeedResponse struct {
	Items []models.FeedItem `json:"items"`
}

type PostRequest struct {
	PostID string `json:"postId"`
}

type ToggleSaveResponse struct {
	Saved bool `json:"saved"`
}

type ReportRequest struct {
	PostID string `json:"postId"`
	Reason string `json:"reason"`
}

type ShareResponse struct {
	URL string `json:"url"`
}

type ReportedResponse struct {
	Reports []models.ReportedPost `json:"reports"`
}
