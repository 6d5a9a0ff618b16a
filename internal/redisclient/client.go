package redisclient

import (
	"time"

	"hn-reader/internal/config"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client from configuration. The short dial timeout keeps
// a missing Redis from stalling commands; the item cache treats connection
// errors as misses.
func New(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})
}
