package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"hn-reader/internal/model"

	"github.com/redis/go-redis/v9"
)

// TTLs are short: HN scores and comment counts move constantly, and the
// freshness directive already lets callers force a network read.
const (
	itemTTL = 15 * time.Minute
	idsTTL  = 5 * time.Minute
)

// RedisCache caches fetched items and feed ID lists in Redis. It implements
// hackernews.ItemCache. Every operation is best-effort: read errors report a
// miss, write errors are swallowed.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func itemKey(id int) string {
	return fmt.Sprintf("hn:item:%d", id)
}

func idsKey(feed model.FeedKind) string {
	return "hn:ids:" + string(feed)
}

func (c *RedisCache) GetItem(ctx context.Context, id int) (model.Item, bool) {
	b, err := c.rdb.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("storage: item read failed", "id", id, "error", err)
		}
		return model.Item{}, false
	}
	var it model.Item
	if err := json.Unmarshal(b, &it); err != nil {
		slog.Debug("storage: item unmarshal failed", "id", id, "error", err)
		return model.Item{}, false
	}
	return it, true
}

func (c *RedisCache) SetItem(ctx context.Context, it model.Item) {
	b, err := json.Marshal(it)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, itemKey(it.ID), b, itemTTL).Err(); err != nil {
		slog.Debug("storage: item write failed", "id", it.ID, "error", err)
	}
}

func (c *RedisCache) GetIDs(ctx context.Context, feed model.FeedKind) ([]int, bool) {
	b, err := c.rdb.Get(ctx, idsKey(feed)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("storage: ids read failed", "feed", feed, "error", err)
		}
		return nil, false
	}
	var ids []int
	if err := json.Unmarshal(b, &ids); err != nil {
		slog.Debug("storage: ids unmarshal failed", "feed", feed, "error", err)
		return nil, false
	}
	return ids, true
}

func (c *RedisCache) SetIDs(ctx context.Context, feed model.FeedKind, ids []int) {
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, idsKey(feed), b, idsTTL).Err(); err != nil {
		slog.Debug("storage: ids write failed", "feed", feed, "error", err)
	}
}
