package feed

import (
	"context"
	"errors"
	"testing"

	"hn-reader/internal/hackernews"
	"hn-reader/internal/model"
)

// stubSource serves a fixed ID list per feed and records freshness.
type stubSource struct {
	ids        map[model.FeedKind][]int
	idsErr     error
	failIDs    map[int]bool
	lastFresh  hackernews.Freshness
	fetchCalls int
}

func (s *stubSource) FetchIDs(_ context.Context, feed model.FeedKind, fresh hackernews.Freshness) ([]int, error) {
	s.lastFresh = fresh
	if s.idsErr != nil {
		return nil, s.idsErr
	}
	return s.ids[feed], nil
}

func (s *stubSource) FetchMany(_ context.Context, ids []int, fresh hackernews.Freshness) []model.Item {
	s.fetchCalls++
	var out []model.Item
	for _, id := range ids {
		if s.failIDs[id] {
			continue
		}
		out = append(out, model.Item{ID: id})
	}
	return out
}

func seq(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func TestPagingThrough65IDs(t *testing.T) {
	src := &stubSource{ids: map[model.FeedKind][]int{model.FeedTop: seq(65)}}
	c := NewController(src, model.FeedTop)
	ctx := context.Background()

	if err := c.LoadInitial(ctx); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	if got := len(c.Items()); got != 30 {
		t.Fatalf("after initial load: want 30 items, got %d", got)
	}
	if c.Cursor() != 30 {
		t.Fatalf("want cursor 30, got %d", c.Cursor())
	}

	// Visible item near the end triggers page two.
	last := c.Items()[29]
	if err := c.LoadMoreIfNeeded(ctx, last.ID); err != nil {
		t.Fatalf("LoadMoreIfNeeded: %v", err)
	}
	if got := len(c.Items()); got != 60 {
		t.Fatalf("after page 2: want 60 items, got %d", got)
	}
	if c.Cursor() != 60 {
		t.Fatalf("want cursor 60, got %d", c.Cursor())
	}

	last = c.Items()[59]
	if err := c.LoadMoreIfNeeded(ctx, last.ID); err != nil {
		t.Fatalf("LoadMoreIfNeeded: %v", err)
	}
	if got := len(c.Items()); got != 65 {
		t.Fatalf("after page 3: want 65 items, got %d", got)
	}
	if c.Cursor() != 65 || !c.Exhausted() {
		t.Fatalf("want exhausted at cursor 65, got cursor %d", c.Cursor())
	}

	// No further loads once exhausted.
	calls := src.fetchCalls
	last = c.Items()[64]
	if err := c.LoadMoreIfNeeded(ctx, last.ID); err != nil {
		t.Fatalf("LoadMoreIfNeeded: %v", err)
	}
	if src.fetchCalls != calls {
		t.Error("exhausted feed should not trigger another fetch")
	}
}

func TestLoadMoreNotNeededMidList(t *testing.T) {
	src := &stubSource{ids: map[model.FeedKind][]int{model.FeedTop: seq(65)}}
	c := NewController(src, model.FeedTop)
	ctx := context.Background()
	if err := c.LoadInitial(ctx); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	calls := src.fetchCalls
	// An item far from the end must not trigger a load.
	if err := c.LoadMoreIfNeeded(ctx, c.Items()[0].ID); err != nil {
		t.Fatalf("LoadMoreIfNeeded: %v", err)
	}
	if src.fetchCalls != calls {
		t.Error("item far from the end triggered a page load")
	}
}

func TestItemOrderMatchesIDList(t *testing.T) {
	src := &stubSource{ids: map[model.FeedKind][]int{model.FeedTop: {9, 3, 7, 1}}}
	c := NewController(src, model.FeedTop)
	if err := c.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	want := []int{9, 3, 7, 1}
	items := c.Items()
	for i, it := range items {
		if it.ID != want[i] {
			t.Errorf("position %d: want %d, got %d", i, want[i], it.ID)
		}
	}
}

func TestSetFeedResetsState(t *testing.T) {
	src := &stubSource{ids: map[model.FeedKind][]int{
		model.FeedTop: seq(40),
		model.FeedNew: {100, 101},
	}}
	c := NewController(src, model.FeedTop)
	ctx := context.Background()
	if err := c.LoadInitial(ctx); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	if err := c.SetFeed(ctx, model.FeedNew); err != nil {
		t.Fatalf("SetFeed: %v", err)
	}
	items := c.Items()
	if len(items) != 2 || items[0].ID != 100 {
		t.Fatalf("expected fresh feed items, got %+v", items)
	}
	if c.Cursor() != 2 {
		t.Errorf("want cursor 2 after switch, got %d", c.Cursor())
	}
	if src.lastFresh != hackernews.PreferCache {
		t.Error("feed switch should prefer the cache")
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	src := &stubSource{ids: map[model.FeedKind][]int{model.FeedTop: seq(10)}}
	c := NewController(src, model.FeedTop)
	ctx := context.Background()
	if err := c.LoadInitial(ctx); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if src.lastFresh != hackernews.BypassCache {
		t.Error("refresh must bypass the cache")
	}
	if got := len(c.Items()); got != 10 {
		t.Errorf("expected 10 items after refresh, got %d", got)
	}
}

func TestIDListFailureSurfacesError(t *testing.T) {
	src := &stubSource{idsErr: errors.New("network down")}
	c := NewController(src, model.FeedTop)
	if err := c.LoadInitial(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if c.Err() == "" {
		t.Error("expected transient error to be surfaced")
	}
	if len(c.Items()) != 0 {
		t.Error("no items should be materialized")
	}
}

func TestFailedPageAdvancesCursor(t *testing.T) {
	// The cursor advances speculatively: IDs whose fetch failed are skipped,
	// not retried, until the next full reset.
	fail := map[int]bool{}
	for id := 31; id <= 60; id++ {
		fail[id] = true
	}
	src := &stubSource{ids: map[model.FeedKind][]int{model.FeedTop: seq(65)}, failIDs: fail}
	c := NewController(src, model.FeedTop)
	ctx := context.Background()
	if err := c.LoadInitial(ctx); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	if err := c.LoadMoreIfNeeded(ctx, c.Items()[29].ID); err != nil {
		t.Fatalf("LoadMoreIfNeeded: %v", err)
	}
	if got := len(c.Items()); got != 30 {
		t.Fatalf("dropped page should add nothing, have %d items", got)
	}
	if c.Cursor() != 60 {
		t.Fatalf("cursor should have advanced past the failed page, got %d", c.Cursor())
	}
	// Existing items were preserved.
	if c.Items()[0].ID != 1 {
		t.Error("previously materialized items must be preserved")
	}
}
