package reader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hn-reader/internal/model"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// DefaultTimeout is how long extraction may run before the caller gets an
// empty answer and falls back to the raw URL.
const DefaultTimeout = 8 * time.Second

// VariantFor names the presentation variant used as part of the cache key.
// The image-stripping pass is variant-defining, so the two must always agree.
func VariantFor(allowImages bool) string {
	if allowImages {
		return "img_on"
	}
	return "img_off"
}

// engineFunc turns a page URL into an extracted (title, bodyHTML) pair.
type engineFunc func(ctx context.Context, pageURL string) (title, content string, err error)

// Extractor produces readable articles from URLs, caching results per
// (URL, variant) and racing extraction against a deadline.
type Extractor struct {
	cache  *Cache
	client *http.Client
	engine engineFunc
}

func NewExtractor(cache *Cache) *Extractor {
	e := &Extractor{
		cache:  cache,
		client: &http.Client{Timeout: 20 * time.Second},
	}
	e.engine = e.readabilityEngine
	return e
}

// ExtractWithTimeout races Extract against the timeout and returns whichever
// resolves first. A timed-out extraction is cancelled and never writes the
// cache, even if its network work eventually completes. Returns nil when
// extraction failed or timed out; the caller decides the fallback (usually
// opening the raw URL).
func (e *Extractor) ExtractWithTimeout(ctx context.Context, rawURL string, allowImages bool, timeout time.Duration) *Article {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res := make(chan *Article, 1)
	go func() {
		res <- e.Extract(rctx, rawURL, allowImages)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case a := <-res:
		return a
	case <-timer.C:
		slog.Debug("reader: extraction timed out", "url", rawURL, "timeout", timeout)
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Extract returns the article for (url, variant), consulting the cache
// first. On a miss it runs the extraction engine, wraps the result in the
// reader shell, and persists it — unless ctx was cancelled in the meantime,
// in which case nothing is written. Returns nil on any failure.
func (e *Extractor) Extract(ctx context.Context, rawURL string, allowImages bool) *Article {
	variant := VariantFor(allowImages)
	if a, ok := e.cache.Load(rawURL, variant); ok {
		return &a
	}

	title, content, err := e.engine(ctx, rawURL)
	if err != nil {
		slog.Debug("reader: extraction failed", "url", rawURL, "error", err)
		return nil
	}
	if strings.TrimSpace(title) == "" {
		title = model.Host(rawURL)
	}
	if !allowImages {
		content = stripMedia(content)
	}
	html, err := wrapHTML(content, allowImages)
	if err != nil {
		slog.Debug("reader: template failed", "url", rawURL, "error", err)
		return nil
	}
	a := Article{
		URL:         rawURL,
		Title:       title,
		ContentHTML: html,
		ExtractedAt: time.Now(),
	}
	// A cancelled extraction must leave no side effects behind.
	if ctx.Err() != nil {
		return nil
	}
	e.cache.Save(a, variant)
	return &a
}

// readabilityEngine fetches the page and runs readability over it.
func (e *Extractor) readabilityEngine(ctx context.Context, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("reader: fetch %s: status %d", pageURL, resp.StatusCode)
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", "", err
	}
	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return "", "", fmt.Errorf("reader: extract content: %w", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", "", fmt.Errorf("reader: no content extracted from %s", pageURL)
	}
	return article.Title, article.Content, nil
}

// stripMedia removes image, video, and figure elements from an HTML
// fragment. Returns the input unchanged when it cannot be parsed.
func stripMedia(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("img, picture, video, figure").Remove()
	out, err := doc.Find("body").Html()
	if err != nil {
		return html
	}
	return out
}
