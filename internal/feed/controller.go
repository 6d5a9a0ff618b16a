// Package feed pages a story feed: it holds the full ordered ID list for
// the active feed and materializes items page by page on demand.
package feed

import (
	"context"
	"sync"

	"hn-reader/internal/hackernews"
	"hn-reader/internal/model"
)

const (
	// PageSize is the number of IDs materialized per page.
	PageSize = 30
	// loadThreshold triggers the next page when the visible item is this
	// close to the end of the materialized list.
	loadThreshold = 5
)

// Source provides feed ID lists and item bodies.
// *hackernews.Client satisfies it.
type Source interface {
	FetchIDs(ctx context.Context, feed model.FeedKind, fresh hackernews.Freshness) ([]int, error)
	FetchMany(ctx context.Context, ids []int, fresh hackernews.Freshness) []model.Item
}

// Controller owns the cursor state for one feed: the ID list, the next-page
// index, and the append-only materialized item list. Switching feeds or
// forcing a refresh clears everything before refetching.
type Controller struct {
	src Source

	mu      sync.Mutex
	feed    model.FeedKind
	fresh   hackernews.Freshness
	ids     []int
	next    int
	items   []model.Item
	lastErr string
}

func NewController(src Source, feed model.FeedKind) *Controller {
	return &Controller{src: src, feed: feed, fresh: hackernews.PreferCache}
}

// Feed returns the active feed kind.
func (c *Controller) Feed() model.FeedKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feed
}

// Items returns the materialized items fetched so far.
func (c *Controller) Items() []model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Cursor reports how far into the ID list paging has advanced.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// Exhausted reports whether every ID has been paged through.
func (c *Controller) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids) > 0 && c.next >= len(c.ids)
}

// Err returns the last transient load error, or "".
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SetFeed switches the active feed, clearing all cursor state, and loads
// the first page.
func (c *Controller) SetFeed(ctx context.Context, feed model.FeedKind) error {
	c.mu.Lock()
	c.feed = feed
	c.reset(hackernews.PreferCache)
	c.mu.Unlock()
	return c.LoadInitial(ctx)
}

// Refresh clears all cursor state and reloads the feed, bypassing caches.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.reset(hackernews.BypassCache)
	c.mu.Unlock()
	return c.LoadInitial(ctx)
}

// reset clears the ID list, cursor, and materialized items. Callers hold mu.
func (c *Controller) reset(fresh hackernews.Freshness) {
	c.ids = nil
	c.next = 0
	c.items = nil
	c.lastErr = ""
	c.fresh = fresh
}

// LoadInitial fetches the feed's full ID list and materializes the first page.
func (c *Controller) LoadInitial(ctx context.Context) error {
	c.mu.Lock()
	feed, fresh := c.feed, c.fresh
	c.mu.Unlock()

	ids, err := c.src.FetchIDs(ctx, feed, fresh)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.ids = ids
	c.next = 0
	c.lastErr = ""
	c.mu.Unlock()
	return c.loadMore(ctx)
}

// LoadMoreIfNeeded materializes the next page when the given visible item
// sits within loadThreshold positions of the end of the list and IDs remain.
func (c *Controller) LoadMoreIfNeeded(ctx context.Context, visibleID int) error {
	c.mu.Lock()
	pos := -1
	for i, it := range c.items {
		if it.ID == visibleID {
			pos = i
			break
		}
	}
	needMore := pos >= 0 && pos >= len(c.items)-loadThreshold && c.next < len(c.ids)
	c.mu.Unlock()
	if !needMore {
		return nil
	}
	return c.loadMore(ctx)
}

// loadMore appends the next page to the materialized list. The cursor is
// advanced before the fetch completes; items a failed fetch dropped are not
// retried until the next full reset.
func (c *Controller) loadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.next >= len(c.ids) {
		c.mu.Unlock()
		return nil
	}
	end := c.next + PageSize
	if end > len(c.ids) {
		end = len(c.ids)
	}
	batch := c.ids[c.next:end]
	c.next = end
	fresh := c.fresh
	c.mu.Unlock()

	fetched := c.src.FetchMany(ctx, batch, fresh)

	c.mu.Lock()
	c.items = append(c.items, fetched...)
	c.mu.Unlock()
	return nil
}
