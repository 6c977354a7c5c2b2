package feed

import (
	"context"
	"sort"
	"sync"
	"time"
)

type postKey struct {
	userID string
	postID string
}

// MemoryRepository keeps saves and reports in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	saved   map[postKey]time.Time
	reports map[postKey]Report
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		saved:   make(map[postKey]time.Time),
		reports: make(map[postKey]Report),
	}
}

func (r *MemoryRepository) ToggleSave(_ context.Context, userID, postID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := postKey{userID, postID}
	if _, ok := r.saved[k]; ok {
		delete(r.saved, k)
		return false, nil
	}
	r.saved[k] = at
	return true, nil
}

func (r *MemoryRepository) IsSaved(_ context.Context, userID, postID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.saved[postKey{userID, postID}]
	return ok, nil
}

func (r *MemoryRepository) SavedPostIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		id string
		at time.Time
	}
	var entries []entry
	for k, at := range r.saved {
		if k.userID == userID {
			entries = append(entries, entry{k.postID, at})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].at.Equal(entries[j].at) {
			return entries[i].id < entries[j].id
		}
		return entries[i].at.Before(entries[j].at)
	})

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.id)
	}
	return out, nil
}

func (r *MemoryRepository) CountSaved(ctx context.Context, userID string) (int, error) {
	ids, err := r.SavedPostIDs(ctx, userID)
	return len(ids), err
}

func (r *MemoryRepository) Report(_ context.Context, userID, postID, reason string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[postKey{userID, postID}] = Report{UserID: userID, PostID: postID, Reason: reason, CreatedAt: at}
	return nil
}

func (r *MemoryRepository) ReportedPostIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for k := range r.reports {
		if k.userID == userID {
			out = append(out, k.postID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepository) Reports(_ context.Context) ([]Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Report, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].PostID < out[j].PostID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
