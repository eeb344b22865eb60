package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/VirajSanda/football-poster/app/news"
)

const minTitleLength = 10

// siteRules describes how to pull article blocks out of one site's markup.
// The selector lists are deliberately broad; sports sites rename their CSS
// classes often and a stale selector should degrade, not break, the source.
type siteRules struct {
	articleSelectors []string
	titleSelector    string
	summarySelector  string

	// titleFromLink takes the title from the first anchor instead of a
	// heading element
	titleFromLink bool
	// fallbackToText uses the block's own text when no heading matched,
	// capped so a whole teaser card is not mistaken for a title
	fallbackToText bool
	fallbackMaxLen int
	baseURL        string
	perPageLimit   int
	maxItems       int
}

// SiteScraper scrapes one HTML news site according to its rules
type SiteScraper struct {
	name      string
	urls      []string
	rules     siteRules
	client    *http.Client
	userAgent string
}

func (s *SiteScraper) Name() string {
	return s.name
}

func (s *SiteScraper) Scrape(ctx context.Context) ([]news.Article, error) {
	var results []news.Article
	seen := make(map[string]struct{})
	var lastErr error

	for _, url := range s.urls {
		doc, err := fetchDocument(ctx, s.client, url, s.userAgent)
		if err != nil {
			slog.Warn("Page fetch failed", "scraper", s.name, "url", url, "error", err)
			lastErr = err
			continue
		}

		found := s.extractArticles(doc, seen)
		results = append(results, found...)
		slog.Debug("Page scraped", "scraper", s.name, "url", url, "items", len(found))
	}

	// A partial harvest beats an error; only fail when every page did.
	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}

	if s.rules.maxItems > 0 && len(results) > s.rules.maxItems {
		results = results[:s.rules.maxItems]
	}

	return results, nil
}

func (s *SiteScraper) extractArticles(doc *goquery.Document, seen map[string]struct{}) []news.Article {
	var blocks []*goquery.Selection
	for _, selector := range s.rules.articleSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			blocks = append(blocks, sel)
		})
	}

	if s.rules.perPageLimit > 0 && len(blocks) > s.rules.perPageLimit {
		blocks = blocks[:s.rules.perPageLimit]
	}

	var results []news.Article
	for _, block := range blocks {
		article, ok := s.extractArticle(block)
		if !ok {
			continue
		}
		if _, dup := seen[article.URL]; dup {
			continue
		}
		seen[article.URL] = struct{}{}
		results = append(results, article)
	}

	return results
}

func (s *SiteScraper) extractArticle(block *goquery.Selection) (news.Article, bool) {
	href, _ := block.Attr("href")
	if href == "" {
		href, _ = block.Find("a").First().Attr("href")
	}

	url := resolveLink(s.rules.baseURL, href)
	if url == "" {
		return news.Article{}, false
	}

	title := s.extractTitle(block)
	if len(title) < minTitleLength {
		return news.Article{}, false
	}

	summary := ""
	if s.rules.summarySelector != "" {
		summary = strings.TrimSpace(block.Find(s.rules.summarySelector).First().Text())
	}

	return news.Normalize(news.Article{
		Title:    title,
		Summary:  summary,
		URL:      url,
		ImageURL: imageFromSelection(block, s.rules.baseURL),
		Source:   s.name,
	}), true
}

func (s *SiteScraper) extractTitle(block *goquery.Selection) string {
	if s.rules.titleFromLink {
		return strings.TrimSpace(block.Find("a").First().Text())
	}

	if s.rules.titleSelector != "" {
		if title := strings.TrimSpace(block.Find(s.rules.titleSelector).First().Text()); title != "" {
			return title
		}
	}

	if s.rules.fallbackToText {
		title := strings.TrimSpace(block.Text())
		if s.rules.fallbackMaxLen > 0 && len(title) > s.rules.fallbackMaxLen {
			return ""
		}
		return title
	}

	return ""
}
