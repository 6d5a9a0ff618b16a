package model

import "fmt"

// Item is a single node in the Hacker News dataset: a story, comment, job,
// or poll. All fields except ID are optional on the wire. A later fetch of
// the same ID may carry different values (score and descendant counts move
// over time); callers replace, never merge.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type,omitempty"` // story, comment, job, poll, ...
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"` // unix seconds
	Text        string `json:"text,omitempty"` // HTML
	Dead        bool   `json:"dead,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Kids        []int  `json:"kids,omitempty"` // child IDs in display order
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Title       string `json:"title,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
}

// FeedKind selects one of the fixed story list endpoints.
type FeedKind string

const (
	FeedTop  FeedKind = "top"
	FeedNew  FeedKind = "new"
	FeedBest FeedKind = "best"
	FeedAsk  FeedKind = "ask"
	FeedShow FeedKind = "show"
	FeedJobs FeedKind = "jobs"
)

// FeedKinds lists all feeds in display order.
func FeedKinds() []FeedKind {
	return []FeedKind{FeedTop, FeedNew, FeedBest, FeedAsk, FeedShow, FeedJobs}
}

// Endpoint maps a feed kind to its API list endpoint.
func (f FeedKind) Endpoint() string {
	switch f {
	case FeedTop:
		return "topstories"
	case FeedNew:
		return "newstories"
	case FeedBest:
		return "beststories"
	case FeedAsk:
		return "askstories"
	case FeedShow:
		return "showstories"
	case FeedJobs:
		return "jobstories"
	}
	return "topstories"
}

// DisplayName returns a human-friendly feed label.
func (f FeedKind) DisplayName() string {
	switch f {
	case FeedTop:
		return "Top"
	case FeedNew:
		return "New"
	case FeedBest:
		return "Best"
	case FeedAsk:
		return "Ask"
	case FeedShow:
		return "Show"
	case FeedJobs:
		return "Jobs"
	}
	return string(f)
}

// ParseFeedKind accepts both short names ("top") and endpoint names
// ("topstories").
func ParseFeedKind(s string) (FeedKind, error) {
	switch s {
	case "top", "topstories":
		return FeedTop, nil
	case "new", "newstories":
		return FeedNew, nil
	case "best", "beststories":
		return FeedBest, nil
	case "ask", "askstories":
		return FeedAsk, nil
	case "show", "showstories":
		return FeedShow, nil
	case "jobs", "job", "jobstories":
		return FeedJobs, nil
	}
	return "", fmt.Errorf("unknown feed kind: %q", s)
}
