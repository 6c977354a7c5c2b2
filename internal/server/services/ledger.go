// Package services contains the server-side business logic: credentials,
// the credit ledger and the content feed.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/creatorhub/internal/timex"
)

// Credit rewards and their log reasons.
const (
	WelcomeBonus      = 10
	DailyBonus        = 10
	ProfileBonus      = 15
	SaveReward        = 2
	ReportReward      = 1
	ShareReward       = 5
	ReasonWelcome     = "Welcome bonus"
	ReasonDaily       = "Daily login bonus"
	ReasonProfile     = "Completed profile"
	ReasonSave        = "Saved content"
	ReasonReport      = "Reported inappropriate content"
	ReasonShare       = "Shared content"
	ReasonAdminAdjust = "Admin adjustment"
	profileIncomplete = 50
	profileComplete   = 100
)

type LedgerService struct {
	repos  repomanager.RepositoryManager
	logger logging.Logger
	now    func() time.Time
}

func NewLedgerService(m repomanager.RepositoryManager, logger logging.Logger) *LedgerService {
	return &LedgerService{repos: m, logger: logger.With("module", "ledger"), now: time.Now}
}

// award appends an award transaction and moves the balance by amount. It
// must run inside a repomanager transaction.
func award(ctx context.Context, repos repomanager.Repositories, userID string, amount int64, reason string, at time.Time) (int64, error) {
	t := &models.CreditTransaction{
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Kind:      models.KindAward,
		CreatedAt: at,
	}
	if err := repos.Ledger.InsertTransaction(ctx, t); err != nil {
		return 0, err
	}
	return repos.Ledger.AddToBalance(ctx, userID, amount)
}

// AwardCredits adds amount (which may be negative) to the user's balance and
// logs it. Returns the new balance.
func (s *LedgerService) AwardCredits(ctx context.Context, userID string, amount int64, reason string) (int64, error) {
	var balance int64
	err := s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		balance, err = award(ctx, repos, userID, amount, reason, s.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("award credits: %w", err)
	}

	s.logger.Info(ctx, "credits awarded", "user_id", userID, "amount", amount, "reason", reason, "balance", balance)
	return balance, nil
}

// GetCredits returns 0 for users the ledger has never seen.
func (s *LedgerService) GetCredits(ctx context.Context, userID string) (int64, error) {
	return s.repos.Ledger().Balance(ctx, userID)
}

// GetCreditTransactions returns the user's log, newest first.
func (s *LedgerService) GetCreditTransactions(ctx context.Context, userID string) ([]models.CreditTransaction, error) {
	txs, err := s.repos.Ledger().ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.CreditTransaction{}
	}
	return txs, nil
}

// AdjustUserCredits overwrites the balance with value and logs an
// admin_set transaction carrying the real delta.
func (s *LedgerService) AdjustUserCredits(ctx context.Context, userID string, value int64) (*models.CreditTransaction, error) {
	if value < 0 {
		return nil, fmt.Errorf("%w: balance cannot be negative", common.ErrorValidation)
	}

	var t *models.CreditTransaction
	err := s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		previous, err := repos.Ledger.SetBalance(ctx, userID, value)
		if err != nil {
			return err
		}
		t = &models.CreditTransaction{
			UserID:    userID,
			Amount:    value - previous,
			Reason:    ReasonAdminAdjust,
			Kind:      models.KindAdminSet,
			CreatedAt: s.now(),
		}
		return repos.Ledger.InsertTransaction(ctx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("adjust credits: %w", err)
	}

	s.logger.Info(ctx, "credits adjusted", "user_id", userID, "balance", value, "delta", t.Amount)
	return t, nil
}

func (s *LedgerService) GetUserDashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	account, err := s.repos.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.repos.Ledger().Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	today, err := s.repos.Ledger().SumSince(ctx, userID, timex.StartOfDay(s.now().UTC()))
	if err != nil {
		return nil, err
	}
	saved, err := s.repos.Feed().CountSaved(ctx, userID)
	if err != nil {
		return nil, err
	}

	completion := profileIncomplete
	if account.ProfileCompleted {
		completion = profileComplete
	}

	return &models.DashboardStats{
		TotalCredits:       balance,
		CreditsEarnedToday: today,
		SavedPosts:         saved,
		ProfileCompletion:  completion,
	}, nil
}

// GetAllUsers lists every account with its ledger balance.
func (s *LedgerService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	accounts, err := s.repos.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.repos.Ledger().Balances(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.User, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Public(balances[a.ID]))
	}
	return out, nil
}

func (s *LedgerService) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	accounts, err := s.repos.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	issued, err := s.repos.Ledger().TotalIssued(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.repos.Feed().Reports(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := timex.StartOfDay(s.now().UTC())
	newToday := 0
	for _, a := range accounts {
		if !a.CreatedAt.Before(dayStart) {
			newToday++
		}
	}

	posts := make(map[string]struct{}, len(reports))
	for _, r := range reports {
		posts[r.PostID] = struct{}{}
	}

	return &models.AdminStats{
		TotalUsers:         len(accounts),
		NewUsersToday:      newToday,
		TotalCreditsIssued: issued,
		ReportedPosts:      len(posts),
	}, nil
}

// ClaimDailyBonus awards the daily bonus once per UTC day. A repeated claim
// returns common.ErrAlreadyClaimed.
func (s *LedgerService) ClaimDailyBonus(ctx context.Context, userID string) (int64, error) {
	now := s.now()

	var balance int64
	err := s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		first, err := repos.Ledger.ClaimDaily(ctx, userID, timex.StartOfDay(now.UTC()))
		if err != nil {
			return err
		}
		if !first {
			return common.ErrAlreadyClaimed
		}
		balance, err = award(ctx, repos, userID, DailyBonus, ReasonDaily, now)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyClaimed) {
			return 0, err
		}
		return 0, fmt.Errorf("claim daily bonus: %w", err)
	}
	return balance, nil
}

// CompleteProfile marks the profile complete and pays the bonus. Only the
// first call pays; later ones return common.ErrAlreadyClaimed.
func (s *LedgerService) CompleteProfile(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		changed, err := repos.Users.MarkProfileCompleted(ctx, userID)
		if err != nil {
			return err
		}
		if !changed {
			return common.ErrAlreadyClaimed
		}
		balance, err = award(ctx, repos, userID, ProfileBonus, ReasonProfile, s.now())
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyClaimed) {
			return 0, err
		}
		return 0, fmt.Errorf("complete profile: %w", err)
	}
	return balance, nil
}
