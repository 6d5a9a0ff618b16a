package cmd

import (
	"hn-reader/internal/hackernews"
	"hn-reader/internal/redisclient"
	"hn-reader/internal/storage"
)

// newHNClient wires the API client with the Redis-backed item cache.
// The returned closer releases the Redis connection.
func newHNClient() (*hackernews.Client, func()) {
	cfg := GetConfig()
	rdb := redisclient.New(cfg.Redis)
	cache := storage.NewRedisCache(rdb)
	client := hackernews.NewClient(cfg.HackerNews.BaseAPI, cache, cfg.HackerNews.Concurrency)
	return client, func() { _ = rdb.Close() }
}
