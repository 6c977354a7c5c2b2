package models

import "time"

// TransactionKind tells ordinary awards apart from administrative overrides.
type TransactionKind string

const (
	// KindAward adds Amount (possibly negative) to the balance.
	KindAward TransactionKind = "award"
	// KindAdminSet records an absolute balance override; Amount holds the
	// resulting delta.
	KindAdminSet TransactionKind = "admin_set"
)

type CreditTransaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Amount    int64           `json:"amount"`
	Reason    string          `json:"reason"`
	Kind      TransactionKind `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
}

type DashboardStats struct {
	TotalCredits       int64 `json:"totalCredits"`
	CreditsEarnedToday int64 `json:"creditsEarnedToday"`
	SavedPosts         int   `json:"savedPosts"`
	ProfileCompletion  int   `json:"profileCompletion"`
}

type AdminStats struct {
	TotalUsers         int   `json:"totalUsers"`
	NewUsersToday      int   `json:"newUsersToday"`
	TotalCreditsIssued int64 `json:"totalCreditsIssued"`
	ReportedPosts      int   `json:"reportedPosts"`
}
