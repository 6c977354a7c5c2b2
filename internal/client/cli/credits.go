package cli

import (
	"context"
	"fmt"
)

func (a *App) Credits(ctx context.Context) error {
	credits, err := a.backend.GetCredits(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn(fmt.Sprintf("Balance: %d credits", credits))
	return nil
}

// History lists transactions, newest first.
func (a *App) History(ctx context.Context) error {
	txs, err := a.backend.GetTransactions(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(txs) == 0 {
		printlnFn("No transactions yet")
		return nil
	}
	for _, t := range txs {
		printlnFn(formatTransaction(t))
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.backend.GetDashboardStats(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn(fmt.Sprintf("Credits: %d (today +%d)", s.TotalCredits, s.CreditsEarnedToday))
	printlnFn(fmt.Sprintf("Saved posts: %d", s.SavedPosts))
	printlnFn(fmt.Sprintf("Profile: %d%% complete", s.ProfileCompletion))
	return nil
}

func (a *App) Daily(ctx context.Context) error {
	credits, err := a.backend.ClaimDailyBonus(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn(fmt.Sprintf("Daily bonus claimed. Balance: %d credits", credits))
	return nil
}

func (a *App) CompleteProfile(ctx context.Context) error {
	credits, err := a.backend.CompleteProfile(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn(fmt.Sprintf("Profile completed. Balance: %d credits", credits))
	return nil
}
