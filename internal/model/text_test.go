package model

import (
	"strings"
	"testing"
	"time"
)

func TestPlainText(t *testing.T) {
	in := `Some <i>emphasis</i> and a <a href="https://example.com">link</a>.<p>Second paragraph with &quot;quotes&quot; &amp; entities.`
	got := PlainText(in)
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("tags survived: %q", got)
	}
	if !strings.Contains(got, `"quotes" & entities`) {
		t.Errorf("entities not unescaped: %q", got)
	}
	if !strings.Contains(got, "Second paragraph") {
		t.Errorf("content lost: %q", got)
	}
	if PlainText("") != "" {
		t.Error("empty input should stay empty")
	}
}

func TestPlainTextDropsStyleBlocks(t *testing.T) {
	in := `<html><head><style>body { color: red; }</style></head><body><p>Visible.</p></body></html>`
	got := PlainText(in)
	if strings.Contains(got, "color") {
		t.Errorf("style content leaked: %q", got)
	}
	if !strings.Contains(got, "Visible.") {
		t.Errorf("content lost: %q", got)
	}
}

func TestHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/a/b", "example.com"},
		{"http://news.ycombinator.com/item?id=1", "news.ycombinator.com"},
		{"", ""},
		{"not a url", ""},
	}
	for _, c := range cases {
		if got := Host(c.in); got != c.want {
			t.Errorf("Host(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{2 * 24 * time.Hour, "2d"},
	}
	for _, c := range cases {
		unix := now.Add(-c.ago).Unix()
		if got := RelativeTime(unix, now); got != c.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", c.ago, got, c.want)
		}
	}
	// Beyond a week switches to an absolute date.
	old := now.Add(-30 * 24 * time.Hour).Unix()
	if got := RelativeTime(old, now); !strings.Contains(got, "2026") {
		t.Errorf("expected absolute date, got %q", got)
	}
	if RelativeTime(0, now) != "" {
		t.Error("zero time should render empty")
	}
}

func TestParseFeedKind(t *testing.T) {
	for _, k := range FeedKinds() {
		got, err := ParseFeedKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseFeedKind(%q) = %v, %v", k, got, err)
		}
		// Endpoint names parse too.
		got, err = ParseFeedKind(k.Endpoint())
		if err != nil || got != k {
			t.Errorf("ParseFeedKind(%q) = %v, %v", k.Endpoint(), got, err)
		}
	}
	if _, err := ParseFeedKind("frontpage"); err == nil {
		t.Error("expected error for unknown feed")
	}
}
