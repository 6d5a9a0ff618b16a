package worker

import (
	"context"
	"log/slog"
	"time"

	"hn-reader/internal/feed"
	"hn-reader/internal/hackernews"
	"hn-reader/internal/model"
)

// Prefetcher periodically refreshes feed ID lists and warms the first page
// of items into the shared item cache, so interactive reads land on a warm
// cache instead of the network.
type Prefetcher struct {
	Client   *hackernews.Client
	Feeds    []model.FeedKind
	Interval time.Duration
	PageSize int // items warmed per feed
}

func (w *Prefetcher) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}
	if w.PageSize <= 0 {
		w.PageSize = feed.PageSize
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Prefetcher) runOnce(ctx context.Context) {
	feeds := w.Feeds
	if len(feeds) == 0 {
		feeds = []model.FeedKind{model.FeedTop}
	}
	for _, f := range feeds {
		ids, err := w.Client.FetchIDs(ctx, f, hackernews.BypassCache)
		if err != nil {
			slog.Error("prefetcher: id list fetch failed", "feed", f, "error", err)
			continue
		}
		n := w.PageSize
		if n > len(ids) {
			n = len(ids)
		}
		items := w.Client.FetchMany(ctx, ids[:n], hackernews.BypassCache)
		slog.Info("prefetcher: warmed feed", "feed", f, "ids", len(ids), "items", len(items))
	}
}
