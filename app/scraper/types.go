package scraper

import (
	"context"

	"github.com/VirajSanda/football-poster/app/news"
)

// Scraper produces candidate articles from a single news source. A failing
// source returns an error and contributes nothing; it never aborts the run.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) ([]news.Article, error)
}
