package scraper

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/VirajSanda/football-poster/app/news"
)

// RSSScraper pulls articles from the RSS feeds defined in the sources
// directory. It complements the HTML scrapers with outlets that publish
// proper feeds.
type RSSScraper struct {
	sources   *SourcesCache
	parser    *gofeed.Parser
	client    *http.Client
	userAgent string
}

func NewRSSScraper(sources *SourcesCache, client *http.Client, userAgent string) *RSSScraper {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &RSSScraper{
		sources:   sources,
		parser:    parser,
		client:    client,
		userAgent: userAgent,
	}
}

func (s *RSSScraper) Name() string {
	return "RSS"
}

func (s *RSSScraper) Scrape(ctx context.Context) ([]news.Article, error) {
	var results []news.Article

	for _, source := range s.sources.GetEnabledSources() {
		feed, err := s.parser.ParseURLWithContext(source.URL, ctx)
		if err != nil {
			slog.Warn("Feed fetch failed", "source", source.Name, "url", source.URL, "error", err)
			continue
		}

		items := feed.Items
		if len(items) > source.Settings.MaxItems {
			items = items[:source.Settings.MaxItems]
		}

		for _, item := range items {
			if item.Link == "" {
				continue
			}

			imageURL := feedItemImage(item)
			if imageURL == "" {
				// Feeds rarely carry images; fall back to the article page.
				imageURL = FetchMainImage(ctx, s.client, item.Link, s.userAgent)
			}

			results = append(results, news.Normalize(news.Article{
				Title:    item.Title,
				Summary:  item.Description,
				URL:      item.Link,
				ImageURL: imageURL,
				Source:   source.Name,
			}))
		}

		slog.Debug("Feed scraped", "source", source.Name, "items", len(items))
	}

	return results, nil
}

func feedItemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
