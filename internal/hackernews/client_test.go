package hackernews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"hn-reader/internal/model"
)

// memCache is an in-memory ItemCache for tests.
type memCache struct {
	items map[int]model.Item
	ids   map[model.FeedKind][]int
}

func newMemCache() *memCache {
	return &memCache{items: map[int]model.Item{}, ids: map[model.FeedKind][]int{}}
}

func (m *memCache) GetItem(_ context.Context, id int) (model.Item, bool) {
	it, ok := m.items[id]
	return it, ok
}

func (m *memCache) SetItem(_ context.Context, it model.Item) { m.items[it.ID] = it }

func (m *memCache) GetIDs(_ context.Context, feed model.FeedKind) ([]int, bool) {
	ids, ok := m.ids[feed]
	return ids, ok
}

func (m *memCache) SetIDs(_ context.Context, feed model.FeedKind, ids []int) { m.ids[feed] = ids }

func newTestServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		fmt.Fprint(w, "[101,102,103]")
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		switch id {
		case 500:
			http.Error(w, "oops", http.StatusInternalServerError)
		case 666:
			fmt.Fprint(w, "{not json")
		case 404:
			fmt.Fprint(w, "null")
		default:
			fmt.Fprintf(w, `{"id":%d,"type":"story","by":"pg","title":"Item %d","score":%d,"kids":[1,2]}`, id, id, id*2)
		}
	})
	return httptest.NewServer(mux)
}

func TestFetchIDs(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	ids, err := c.FetchIDs(context.Background(), model.FeedTop, PreferCache)
	if err != nil {
		t.Fatalf("FetchIDs: %v", err)
	}
	want := []int{101, 102, 103}
	if len(ids) != len(want) {
		t.Fatalf("want %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("want %v, got %v", want, ids)
			break
		}
	}
}

func TestFetchItem(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	it, err := c.FetchItem(context.Background(), 42, PreferCache)
	if err != nil {
		t.Fatalf("FetchItem: %v", err)
	}
	if it.ID != 42 || it.By != "pg" || it.Score != 84 {
		t.Errorf("unexpected item: %+v", it)
	}
	if len(it.Kids) != 2 {
		t.Errorf("expected 2 kids, got %v", it.Kids)
	}
}

func TestFetchItemErrors(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)

	_, err := c.FetchItem(context.Background(), 500, PreferCache)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", reqErr.Status)
	}

	_, err = c.FetchItem(context.Background(), 666, PreferCache)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}

	// The API answers "null" for unknown IDs.
	_, err = c.FetchItem(context.Background(), 404, PreferCache)
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError for null item, got %v", err)
	}
}

func TestFreshnessPreferCache(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	cache := newMemCache()
	c := NewClient(srv.URL, cache, 0)
	ctx := context.Background()

	// First fetch misses the cache and goes to the network.
	if _, err := c.FetchItem(ctx, 42, PreferCache); err != nil {
		t.Fatalf("FetchItem: %v", err)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("expected 1 network hit, got %d", n)
	}
	// Second fetch is served from the cache.
	it, err := c.FetchItem(ctx, 42, PreferCache)
	if err != nil {
		t.Fatalf("FetchItem: %v", err)
	}
	if it.ID != 42 {
		t.Errorf("unexpected cached item: %+v", it)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Errorf("expected cached read, got %d network hits", n)
	}
}

func TestFreshnessBypassCache(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	cache := newMemCache()
	cache.SetItem(context.Background(), model.Item{ID: 42, Title: "stale"})
	c := NewClient(srv.URL, cache, 0)

	it, err := c.FetchItem(context.Background(), 42, BypassCache)
	if err != nil {
		t.Fatalf("FetchItem: %v", err)
	}
	if it.Title == "stale" {
		t.Error("bypass should not return the cached value")
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Errorf("expected 1 network hit, got %d", n)
	}
	// The fresh value replaces the stale one.
	if cached, ok := cache.GetItem(context.Background(), 42); !ok || cached.Title == "stale" {
		t.Errorf("expected cache overwrite, got %+v ok=%v", cached, ok)
	}
}

func TestFetchIDsPreferCache(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	cache := newMemCache()
	c := NewClient(srv.URL, cache, 0)
	ctx := context.Background()

	if _, err := c.FetchIDs(ctx, model.FeedTop, PreferCache); err != nil {
		t.Fatalf("FetchIDs: %v", err)
	}
	if _, err := c.FetchIDs(ctx, model.FeedTop, PreferCache); err != nil {
		t.Fatalf("FetchIDs: %v", err)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Errorf("expected 1 network hit, got %d", n)
	}
}

func TestFetchManyOrderAndDrops(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, nil, 4)
	got := c.FetchMany(context.Background(), []int{11, 500, 12, 666, 13}, PreferCache)
	want := []int{11, 12, 13}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, it := range got {
		if it.ID != want[i] {
			t.Errorf("position %d: want id %d, got %d", i, want[i], it.ID)
		}
	}
}
