package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	htmlTagRe   = regexp.MustCompile(`<[^>]+>`) // best-effort removal
	htmlBlockRe = regexp.MustCompile(`(?is)<(style|script)[^>]*>.*?</(style|script)>`)
)

// PlainText strips HTML tags and common entities from item text.
// Minimal approach; HN "text" is simple HTML, so no parser dependency.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	s = htmlBlockRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "<p>", "\n\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	replacer := strings.NewReplacer(
		"&quot;", "\"",
		"&apos;", "'",
		"&#x27;", "'",
		"&#x2F;", "/",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
	return strings.TrimSpace(replacer.Replace(s))
}

// Host extracts the host of a URL without a leading "www.".
// Returns "" when the URL is empty or unparsable.
func Host(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// RelativeTime renders a unix timestamp as a compact age relative to now:
// "just now", "12m", "3h", "4d", or an absolute date beyond a week.
func RelativeTime(unix int64, now time.Time) string {
	if unix <= 0 {
		return ""
	}
	t := time.Unix(unix, 0)
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	}
	return t.Format("Jan 2, 2006")
}
