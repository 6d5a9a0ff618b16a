package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hn-reader/internal/model"
)

// DefaultBaseAPI is the public v0 endpoint.
// Docs: https://github.com/HackerNews/API
const DefaultBaseAPI = "https://hacker-news.firebaseio.com/v0"

// DefaultConcurrency bounds simultaneous in-flight item fetches.
const DefaultConcurrency = 8

// Freshness is the per-request cache directive.
type Freshness int

const (
	// PreferCache returns a cached value when present, fetching only on miss.
	PreferCache Freshness = iota
	// BypassCache always goes to the network and overwrites the cached value.
	BypassCache
)

// ItemCache stores fetched items and feed ID lists. Implementations are
// best-effort: a miss on error is fine, failed writes are swallowed.
// A nil cache degrades to always-network.
type ItemCache interface {
	GetItem(ctx context.Context, id int) (model.Item, bool)
	SetItem(ctx context.Context, it model.Item)
	GetIDs(ctx context.Context, feed model.FeedKind) ([]int, bool)
	SetIDs(ctx context.Context, feed model.FeedKind, ids []int)
}

// Client is a read-only Hacker News API client with an optional cache
// honoring per-request freshness.
type Client struct {
	baseAPI       string
	client        *http.Client
	cache         ItemCache
	maxConcurrent int
}

// NewClient creates a client. baseAPI defaults to the public v0 endpoint when
// empty; cache may be nil; maxConcurrent <= 0 falls back to DefaultConcurrency.
func NewClient(baseAPI string, cache ItemCache, maxConcurrent int) *Client {
	if strings.TrimSpace(baseAPI) == "" {
		baseAPI = DefaultBaseAPI
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultConcurrency
	}
	return &Client{
		baseAPI:       strings.TrimRight(baseAPI, "/"),
		client:        &http.Client{Timeout: 10 * time.Second},
		cache:         cache,
		maxConcurrent: maxConcurrent,
	}
}

// FetchIDs loads the ordered ID list for a feed.
func (c *Client) FetchIDs(ctx context.Context, feed model.FeedKind, fresh Freshness) ([]int, error) {
	if fresh == PreferCache && c.cache != nil {
		if ids, ok := c.cache.GetIDs(ctx, feed); ok {
			return ids, nil
		}
	}
	endpoint := fmt.Sprintf("%s/%s.json", c.baseAPI, url.PathEscape(feed.Endpoint()))
	var ids []int
	if err := c.getJSON(ctx, endpoint, fresh, &ids); err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.SetIDs(ctx, feed, ids)
	}
	return ids, nil
}

// FetchItem loads a single item by ID.
func (c *Client) FetchItem(ctx context.Context, id int, fresh Freshness) (model.Item, error) {
	if fresh == PreferCache && c.cache != nil {
		if it, ok := c.cache.GetItem(ctx, id); ok {
			return it, nil
		}
	}
	endpoint := fmt.Sprintf("%s/item/%d.json", c.baseAPI, id)
	var it model.Item
	if err := c.getJSON(ctx, endpoint, fresh, &it); err != nil {
		return model.Item{}, err
	}
	if it.ID == 0 {
		// The API answers "null" for nonexistent IDs.
		return model.Item{}, &DecodeError{URL: endpoint, Err: fmt.Errorf("item %d not found", id)}
	}
	if c.cache != nil {
		c.cache.SetItem(ctx, it)
	}
	return it, nil
}

// FetchMany resolves IDs into items with at most the client's configured
// number of fetches in flight. Output order follows input order; failed
// fetches are dropped. Duplicate IDs are fetched independently.
func (c *Client) FetchMany(ctx context.Context, ids []int, fresh Freshness) []model.Item {
	if len(ids) == 0 {
		return nil
	}
	slog.Debug("hackernews: fetching items", "count", len(ids))
	return fetchBounded(ctx, ids, c.maxConcurrent, func(ctx context.Context, id int) (model.Item, error) {
		return c.FetchItem(ctx, id, fresh)
	})
}

func (c *Client) getJSON(ctx context.Context, endpoint string, fresh Freshness, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &RequestError{URL: endpoint, Err: err}
	}
	if fresh == BypassCache {
		req.Header.Set("Cache-Control", "no-cache")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{URL: endpoint, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{URL: endpoint, Err: err}
	}
	return nil
}
