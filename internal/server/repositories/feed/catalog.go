package feed

import (
	"path"
	"sort"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/models"
)

// Catalog is the fixed set of feed items. Creation times are offsets from
// the moment the catalog was built.
type Catalog struct {
	items []models.FeedItem
	byID  map[string]models.FeedItem
}

type seedItem struct {
	id, source, sourceID, content, author, image, url string
	age                                               time.Duration
}

var seedItems = []seedItem{
	{"t1", "twitter", "12345", "Just launched a new creator dashboard! Check out the amazing features for content creators.",
		"TechLauncher", "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b?w=800&auto=format&fit=crop",
		"https://twitter.com/example/status/12345", 30 * time.Minute},
	{"t2", "twitter", "12346", "How creators can maximize their revenue in 2025: A thread 🧵",
		"CreatorEconomy", "", "https://twitter.com/example/status/12346", 2 * time.Hour},
	{"t3", "twitter", "12347", "Our latest update includes new analytic tools for creators to understand their audience better.",
		"ProductUpdates", "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=800&auto=format&fit=crop",
		"https://twitter.com/example/status/12347", 5 * time.Hour},
	{"t4", "twitter", "12348", "Just hit 100k followers! Thanks to all my supporters for the amazing journey so far!",
		"TopCreator", "", "https://twitter.com/example/status/12348", 8 * time.Hour},
	{"r1", "reddit", "abc123", "What tools do you use for tracking your creator analytics? I'm looking for recommendations.",
		"creator_curious", "", "https://reddit.com/r/Creators/comments/abc123", 1 * time.Hour},
	{"r2", "reddit", "abc124", "I built a dashboard that helps creators track their income across multiple platforms. Here's how it works.",
		"dev_for_creators", "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=800&auto=format&fit=crop",
		"https://reddit.com/r/Creators/comments/abc124", 4 * time.Hour},
	{"r3", "reddit", "abc125", "How much time do you spend on content creation vs. business management as a creator?",
		"time_management_guru", "", "https://reddit.com/r/Creators/comments/abc125", 6 * time.Hour},
	{"r4", "reddit", "abc126", "Launched my creator membership program today and already got 50 subscribers! Here's how I promoted it.",
		"successful_creator", "https://images.unsplash.com/photo-1531297484001-80022131f5a1?w=800&auto=format&fit=crop",
		"https://reddit.com/r/Creators/comments/abc126", 10 * time.Hour},
}

// NewCatalog builds the default catalog relative to start.
func NewCatalog(start time.Time) *Catalog {
	items := make([]models.FeedItem, 0, len(seedItems))
	for _, s := range seedItems {
		items = append(items, models.FeedItem{
			ID:        s.id,
			Source:    models.FeedSource(s.source),
			SourceID:  s.sourceID,
			Content:   s.content,
			Author:    s.author,
			CreatedAt: start.Add(-s.age),
			ImageURL:  s.image,
			URL:       s.url,
		})
	}
	return NewCatalogFromItems(items)
}

func NewCatalogFromItems(items []models.FeedItem) *Catalog {
	c := &Catalog{
		items: append([]models.FeedItem(nil), items...),
		byID:  make(map[string]models.FeedItem, len(items)),
	}
	for _, it := range c.items {
		c.byID[it.ID] = it
	}
	return c
}

// WithObjectImages returns a copy whose images are object keys
// prefix/<id>.jpg instead of external URLs. Items without an image keep
// none.
func (c *Catalog) WithObjectImages(prefix string) *Catalog {
	items := make([]models.FeedItem, 0, len(c.items))
	for _, it := range c.items {
		if it.ImageURL != "" {
			it.ImageURL = path.Join(prefix, it.ID+".jpg")
		}
		items = append(items, it)
	}
	return NewCatalogFromItems(items)
}

func (c *Catalog) Get(id string) (models.FeedItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Items returns the items from the given sources, newest first. No
// sources means all of them.
func (c *Catalog) Items(sources ...models.FeedSource) []models.FeedItem {
	want := make(map[models.FeedSource]bool, len(sources))
	for _, s := range sources {
		want[s] = true
	}

	out := make([]models.FeedItem, 0, len(c.items))
	for _, it := range c.items {
		if len(want) == 0 || want[it.Source] {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
