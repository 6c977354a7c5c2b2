package cli

import (
	"context"
	"os"
	"strings"

	"github.com/dmitrijs2005/creatorhub/internal/models"
)

var getMultiline = GetMultiline

// Feed lists posts from the given sources, or all of them.
func (a *App) Feed(ctx context.Context, args []string) error {
	sources := make([]models.FeedSource, 0, len(args))
	for _, s := range args {
		sources = append(sources, models.FeedSource(strings.ToLower(s)))
	}

	items, err := a.backend.FetchFeed(ctx, sources...)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(items) == 0 {
		printlnFn("Feed is empty")
		return nil
	}
	for _, it := range items {
		printlnFn(formatItem(it))
	}
	return nil
}

func postID(args []string, usage string) (string, bool) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return "", false
	}
	return args[0], true
}

// Save toggles the saved flag on a post.
func (a *App) Save(ctx context.Context, args []string) error {
	id, ok := postID(args, "save <id>")
	if !ok {
		return nil
	}
	saved, err := a.backend.ToggleSave(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	if saved {
		printlnFn("Saved " + id)
	} else {
		printlnFn("Removed " + id + " from saved")
	}
	return nil
}

func (a *App) Saved(ctx context.Context) error {
	items, err := a.backend.GetSaved(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(items) == 0 {
		printlnFn("No saved posts")
		return nil
	}
	for _, it := range items {
		printlnFn(formatItem(it))
	}
	return nil
}

// Report flags a post. Without a reason on the command line it is asked
// for interactively.
func (a *App) Report(ctx context.Context, args []string) error {
	id, ok := postID(args, "report <id> [reason]")
	if !ok {
		return nil
	}
	reason := strings.Join(args[1:], " ")
	if reason == "" {
		var err error
		if reason, err = getMultiline(a.reader, "Why is this post inappropriate?", os.Stdout); err != nil {
			return err
		}
	}
	if err := a.backend.Report(ctx, id, reason); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Reported " + id + ". Thanks for keeping the feed clean.")
	return nil
}

func (a *App) Share(ctx context.Context, args []string) error {
	id, ok := postID(args, "share <id>")
	if !ok {
		return nil
	}
	url, err := a.backend.Share(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Share link: " + url)
	return nil
}
