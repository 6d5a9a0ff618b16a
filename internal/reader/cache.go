package reader

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Article is an extracted, readable rendition of a web page. Identity is the
// source URL plus the presentation variant it was extracted under.
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"content_html"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Cache persists extracted articles, one JSON file per (url, variant) key.
// It is best-effort throughout: load failures read as misses and save
// failures are swallowed, so extraction never depends on it. Safe for
// concurrent use; same-key writes are serialized and each file lands via an
// atomic rename, so readers never observe a partial file.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// NewCache returns a cache rooted at dir. The directory is created on first
// save.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// cacheKey encodes (url, variant) to a filesystem-safe token.
func cacheKey(url, variant string) string {
	return base64.URLEncoding.EncodeToString([]byte(url + variant))
}

func (c *Cache) path(url, variant string) string {
	return filepath.Join(c.dir, cacheKey(url, variant)+".json")
}

// Load returns the cached article for (url, variant), if present.
func (c *Cache) Load(url, variant string) (Article, bool) {
	b, err := os.ReadFile(c.path(url, variant))
	if err != nil {
		return Article{}, false
	}
	var a Article
	if err := json.Unmarshal(b, &a); err != nil {
		slog.Debug("reader: cache entry unreadable", "url", url, "error", err)
		return Article{}, false
	}
	return a, true
}

// Save persists an article under (article.URL, variant). Failures are logged
// and swallowed.
func (c *Cache) Save(a Article, variant string) {
	b, err := json.Marshal(a)
	if err != nil {
		slog.Debug("reader: cache marshal failed", "url", a.URL, "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		slog.Debug("reader: cache dir create failed", "dir", c.dir, "error", err)
		return
	}
	final := c.path(a.URL, variant)
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		slog.Debug("reader: cache temp create failed", "error", err)
		return
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		slog.Debug("reader: cache write failed", "url", a.URL, "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		slog.Debug("reader: cache rename failed", "url", a.URL, "error", err)
	}
}

// Clear removes every entry in the cache directory.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			slog.Debug("reader: cache remove failed", "name", e.Name(), "error", err)
		}
	}
}
