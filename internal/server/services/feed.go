package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/media"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/feed"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/repomanager"
)

type FeedService struct {
	repos   repomanager.RepositoryManager
	catalog *feed.Catalog
	signer  media.Signer
	logger  logging.Logger
	now     func() time.Time
}

func NewFeedService(m repomanager.RepositoryManager, catalog *feed.Catalog, signer media.Signer, logger logging.Logger) *FeedService {
	if signer == nil {
		signer = media.Passthrough{}
	}
	return &FeedService{
		repos:   m,
		catalog: catalog,
		signer:  signer,
		logger:  logger.With("module", "feed"),
		now:     time.Now,
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (s *FeedService) resolveImage(ctx context.Context, it *models.FeedItem) {
	if it.ImageURL == "" {
		return
	}
	u, err := s.signer.Resolve(ctx, it.ImageURL)
	if err != nil {
		s.logger.Warn(ctx, "image not resolved", "post_id", it.ID, "error", err)
		it.ImageURL = ""
		return
	}
	it.ImageURL = u
}

// FetchFeed returns the items from sources (all when empty), newest first,
// flagged with the caller's saves and reports.
func (s *FeedService) FetchFeed(ctx context.Context, userID string, sources []models.FeedSource) ([]models.FeedItem, error) {
	for _, src := range sources {
		if src != models.SourceTwitter && src != models.SourceReddit {
			return nil, fmt.Errorf("%w: unknown source %q", common.ErrorValidation, src)
		}
	}

	savedIDs, err := s.repos.Feed().SavedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	reportedIDs, err := s.repos.Feed().ReportedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, reported := toSet(savedIDs), toSet(reportedIDs)

	items := s.catalog.Items(sources...)
	for i := range items {
		items[i].Saved = saved[items[i].ID]
		items[i].Reported = reported[items[i].ID]
		s.resolveImage(ctx, &items[i])
	}
	return items, nil
}

func (s *FeedService) post(postID string) (models.FeedItem, error) {
	it, ok := s.catalog.Get(postID)
	if !ok {
		return models.FeedItem{}, fmt.Errorf("post %q: %w", postID, common.ErrorNotFound)
	}
	return it, nil
}

// ToggleSavePost flips the saved flag and returns its new value. Saving
// pays SaveReward; unsaving pays nothing.
func (s *FeedService) ToggleSavePost(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.post(postID); err != nil {
		return false, err
	}

	now := s.now()
	var saved bool
	err := s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		saved, err = repos.Feed.ToggleSave(ctx, userID, postID, now)
		if err != nil || !saved {
			return err
		}
		_, err = award(ctx, repos, userID, SaveReward, ReasonSave, now)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("toggle save: %w", err)
	}
	return saved, nil
}

func (s *FeedService) IsPostSaved(ctx context.Context, userID, postID string) (bool, error) {
	return s.repos.Feed().IsSaved(ctx, userID, postID)
}

// GetSavedPosts returns the user's saved items in the order they were saved.
func (s *FeedService) GetSavedPosts(ctx context.Context, userID string) ([]models.FeedItem, error) {
	ids, err := s.repos.Feed().SavedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.FeedItem, 0, len(ids))
	for _, id := range ids {
		it, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		it.Saved = true
		s.resolveImage(ctx, &it)
		out = append(out, it)
	}
	return out, nil
}

// ReportPost records the report and pays ReportReward. Re-reporting the
// same post replaces the reason and pays again.
func (s *FeedService) ReportPost(ctx context.Context, userID, postID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: reason is required", common.ErrorValidation)
	}
	if _, err := s.post(postID); err != nil {
		return err
	}

	now := s.now()
	err := s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.Feed.Report(ctx, userID, postID, reason, now); err != nil {
			return err
		}
		_, err := award(ctx, repos, userID, ReportReward, ReasonReport, now)
		return err
	})
	if err != nil {
		return fmt.Errorf("report post: %w", err)
	}

	s.logger.Info(ctx, "post reported", "user_id", userID, "post_id", postID)
	return nil
}

// SharePost pays ShareReward and returns the post's public URL.
func (s *FeedService) SharePost(ctx context.Context, userID, postID string) (string, error) {
	it, err := s.post(postID)
	if err != nil {
		return "", err
	}

	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		_, err := award(ctx, repos, userID, ShareReward, ReasonShare, s.now())
		return err
	})
	if err != nil {
		return "", fmt.Errorf("share post: %w", err)
	}
	return it.URL, nil
}

// GetReportedPosts lists every report with its post, oldest first. Reports
// of posts no longer in the catalog are skipped.
func (s *FeedService) GetReportedPosts(ctx context.Context) ([]models.ReportedPost, error) {
	reports, err := s.repos.Feed().Reports(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ReportedPost, 0, len(reports))
	for _, r := range reports {
		it, ok := s.catalog.Get(r.PostID)
		if !ok {
			continue
		}
		s.resolveImage(ctx, &it)
		out = append(out, models.ReportedPost{Post: it, Reason: r.Reason, UserID: r.UserID, CreatedAt: r.CreatedAt})
	}
	return out, nil
}
