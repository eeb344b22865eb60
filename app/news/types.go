package news

import (
	"strings"
	"time"
)

const (
	maxTitleLength   = 300
	maxSummaryLength = 500
)

// Article is a candidate item produced by a scraper. It has no identity
// until it survives the football filter and deduplication and is inserted
// as a Record.
type Article struct {
	Title    string
	Summary  string
	URL      string
	ImageURL string // empty when the source exposed no image
	VideoURL string // empty when the source exposed no video
	Source   string
}

// Record is a persisted news row.
type Record struct {
	ID            int64
	Title         string
	Summary       string
	URL           string
	ImageURL      string
	VideoURL      string
	Source        string
	Hash          string
	Seq           int64
	Posted        bool
	FBPostID      string
	ScheduledTime *time.Time
	PostedAt      *time.Time
	CreatedAt     time.Time
}

// Normalize trims every field and caps title/summary lengths. Scrapers call
// it once at their boundary so the rest of the pipeline can assume clean
// input.
func Normalize(a Article) Article {
	a.Title = truncate(strings.TrimSpace(a.Title), maxTitleLength)
	a.Summary = truncate(strings.TrimSpace(a.Summary), maxSummaryLength)
	a.URL = strings.TrimSpace(a.URL)
	a.ImageURL = strings.TrimSpace(a.ImageURL)
	a.VideoURL = strings.TrimSpace(a.VideoURL)
	a.Source = strings.TrimSpace(a.Source)
	return a
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so a multi-byte character is never split.
	runes := []rune(s)
	for len(string(runes)) > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
