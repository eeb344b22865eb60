package scraper

import (
	"context"
	"net/http"
	"net/url"
)

// FetchMainImage tries to extract a lead image from an article page,
// preferring the OpenGraph image over the first inline one. Returns an
// empty string when the page has neither or cannot be fetched.
func FetchMainImage(ctx context.Context, client *http.Client, pageURL, userAgent string) string {
	doc, err := fetchDocument(ctx, client, pageURL, userAgent)
	if err != nil {
		return ""
	}

	if og, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && og != "" {
		return og
	}

	src, ok := doc.Find("img").First().Attr("src")
	if !ok || src == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}
