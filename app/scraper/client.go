package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchTimeout = 15 * time.Second

// NewHTTPClient returns the client used for all scraping requests
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// fetchDocument downloads a page and parses it into a goquery document.
// Browser-like headers keep the sports sites from serving their bot pages.
func fetchDocument(ctx context.Context, client *http.Client, url, userAgent string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// resolveLink turns site-relative and protocol-relative references into
// absolute URLs. Anything else that is not already absolute is dropped.
func resolveLink(base, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return base + href
	case strings.HasPrefix(href, "http"):
		return href
	default:
		return ""
	}
}

// imageFromSelection extracts the first image URL from an article block,
// checking the lazy-loading attributes the sports sites use.
func imageFromSelection(s *goquery.Selection, base string) string {
	img := s.Find("img").First()
	if img.Length() == 0 {
		return ""
	}

	for _, attr := range []string{"src", "data-src", "data-lazy"} {
		if v, ok := img.Attr(attr); ok && v != "" {
			return resolveLink(base, v)
		}
	}

	return ""
}
