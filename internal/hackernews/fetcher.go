package hackernews

import (
	"context"
	"time"

	"hn-reader/internal/model"
)

// itemFetchTimeout caps a single item fetch so one slow request cannot hold
// an admission slot indefinitely.
const itemFetchTimeout = 8 * time.Second

type fetchFunc func(ctx context.Context, id int) (model.Item, error)

// fetchBounded fetches every ID with at most limit requests in flight.
// A buffered channel is the admission gate: each task acquires a slot before
// issuing its request and releases it on completion, success or not.
// Completion order is arbitrary; results are reassembled into input order
// through index-tagged slots, with failures silently dropped, so the output
// may be shorter than the input.
func fetchBounded(ctx context.Context, ids []int, limit int, fetch fetchFunc) []model.Item {
	if len(ids) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	type result struct {
		idx  int
		item model.Item
		ok   bool
	}
	sem := make(chan struct{}, limit)
	done := make(chan result, len(ids))
	for i, id := range ids {
		go func(idx, id int) {
			sem <- struct{}{}
			defer func() { <-sem }()
			ictx, cancel := context.WithTimeout(ctx, itemFetchTimeout)
			defer cancel()
			it, err := fetch(ictx, id)
			if err != nil {
				done <- result{idx: idx}
				return
			}
			done <- result{idx: idx, item: it, ok: true}
		}(i, id)
	}
	slots := make([]result, len(ids))
	for range ids {
		r := <-done
		slots[r.idx] = r
	}
	out := make([]model.Item, 0, len(ids))
	for _, r := range slots {
		if r.ok {
			out = append(out, r.item)
		}
	}
	return out
}
