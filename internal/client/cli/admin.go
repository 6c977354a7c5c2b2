package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) Users(ctx context.Context) error {
	users, err := a.backend.GetAllUsers(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("%-10s %-14s %-26s %-5s %6d", u.ID, u.Username, u.Email, u.Role, u.Credits))
	}
	return nil
}

// Adjust sets a user's balance to an absolute value.
func (a *App) Adjust(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: adjust <userId> <credits>")
		return nil
	}
	credits, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Credits must be a whole number")
		return err
	}

	t, err := a.backend.AdjustUserCredits(ctx, args[0], credits)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn(fmt.Sprintf("Balance of %s set to %d (%+d)", args[0], credits, t.Amount))
	return nil
}

func (a *App) AdminStats(ctx context.Context) error {
	s, err := a.backend.GetAdminStats(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn(fmt.Sprintf("Users: %d (new today %d)", s.TotalUsers, s.NewUsersToday))
	printlnFn(fmt.Sprintf("Credits issued: %d", s.TotalCreditsIssued))
	printlnFn(fmt.Sprintf("Reported posts: %d", s.ReportedPosts))
	return nil
}

func (a *App) Reported(ctx context.Context) error {
	reports, err := a.backend.GetReported(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(reports) == 0 {
		printlnFn("No reports")
		return nil
	}
	for _, r := range reports {
		printlnFn(fmt.Sprintf("%s by %s: %q", r.Post.ID, r.UserID, r.Reason))
	}
	return nil
}
