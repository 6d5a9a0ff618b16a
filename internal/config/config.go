package config

import (
	"os"
	"path/filepath"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings for the item cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HackerNewsConfig controls the API client.
type HackerNewsConfig struct {
	BaseAPI     string `mapstructure:"base_api"`
	Concurrency int    `mapstructure:"concurrency"` // max in-flight item fetches
}

// ReaderConfig controls article extraction.
type ReaderConfig struct {
	CacheDir   string `mapstructure:"cache_dir"`
	Timeout    string `mapstructure:"timeout"` // duration string, e.g., "8s"
	ShowImages bool   `mapstructure:"show_images"`
}

// OpenAIConfig enables the optional article summarizer.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// PrefetchConfig controls the serve-mode cache warmer.
type PrefetchConfig struct {
	Feeds    []string `mapstructure:"feeds"`    // e.g., top,new,best
	Interval string   `mapstructure:"interval"` // duration string, e.g., "10m"
}

// Config is the top-level configuration structure.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Redis      RedisConfig      `mapstructure:"redis"`
	HackerNews HackerNewsConfig `mapstructure:"hackernews"`
	Reader     ReaderConfig     `mapstructure:"reader"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Prefetch   PrefetchConfig   `mapstructure:"prefetch"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.HackerNews.BaseAPI == "" {
		c.HackerNews.BaseAPI = "https://hacker-news.firebaseio.com/v0"
	}
	if c.HackerNews.Concurrency <= 0 {
		c.HackerNews.Concurrency = 8
	}
	if c.Reader.CacheDir == "" {
		c.Reader.CacheDir = defaultReaderCacheDir()
	}
	if c.Reader.Timeout == "" {
		c.Reader.Timeout = "8s"
	}
	if len(c.Prefetch.Feeds) == 0 {
		c.Prefetch.Feeds = []string{"top"}
	}
	if c.Prefetch.Interval == "" {
		c.Prefetch.Interval = "10m"
	}
}

func defaultReaderCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "cache", "reader")
	}
	return filepath.Join(base, "hn-reader", "reader")
}
