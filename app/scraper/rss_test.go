package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const fixtureRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Football Feed</title>
  <item>
    <title>Liverpool close in on title after win at Anfield</title>
    <link>%[1]s/article/liverpool</link>
    <description>Three more points put the champions-elect twelve clear.</description>
  </item>
  <item>
    <title>Keeper howler gifts late equaliser</title>
    <link>%[1]s/article/howler</link>
    <description>A night to forget between the posts.</description>
    <enclosure url="https://cdn.example.com/howler.jpg" length="1000" type="image/jpeg"/>
  </item>
</channel>
</rss>`

const fixtureArticlePage = `<html><head>
<meta property="og:image" content="https://cdn.example.com/lead.jpg">
</head><body><p>Article body</p></body></html>`

func writeSourceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
}

func TestRSSScraper(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, fixtureRSS, server.URL)
	})
	mux.HandleFunc("/article/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fixtureArticlePage)
	})

	dir := t.TempDir()
	writeSourceFile(t, dir, "football-feed.yml", fmt.Sprintf(`
name: "Football Feed"
url: "%s/feed.xml"
settings:
  enabled: true
  max_items: 5
`, server.URL))

	sources := NewSourcesCache(dir)
	if err := sources.Run(); err != nil {
		t.Fatalf("Failed to load sources: %v", err)
	}

	s := NewRSSScraper(sources, server.Client(), "Test Agent")
	articles, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Liverpool close in on title after win at Anfield" {
		t.Errorf("Unexpected title: %s", first.Title)
	}
	if first.Source != "Football Feed" {
		t.Errorf("Unexpected source: %s", first.Source)
	}
	if first.ImageURL != "https://cdn.example.com/lead.jpg" {
		t.Errorf("Expected og:image fallback, got %s", first.ImageURL)
	}

	// The enclosure image should win without fetching the article page.
	second := articles[1]
	if second.ImageURL != "https://cdn.example.com/howler.jpg" {
		t.Errorf("Expected enclosure image, got %s", second.ImageURL)
	}
}

func TestRSSScraperSkipsDisabledSources(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "disabled.yml", `
name: "Disabled Feed"
url: "https://example.com/feed.xml"
settings:
  enabled: false
`)

	sources := NewSourcesCache(dir)
	if err := sources.Run(); err != nil {
		t.Fatalf("Failed to load sources: %v", err)
	}

	if len(sources.GetEnabledSources()) != 0 {
		t.Error("Disabled source should not be returned")
	}
	if sources.GetSourceCount() != 1 {
		t.Errorf("Expected 1 cached source, got %d", sources.GetSourceCount())
	}
}

func TestSourcesCacheRejectsMissingURL(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "broken.yml", `
name: "Broken Feed"
settings:
  enabled: true
`)

	sources := NewSourcesCache(dir)
	if err := sources.Run(); err == nil {
		t.Error("Expected error for source without URL")
	}
}

func TestSourcesCacheMissingDir(t *testing.T) {
	sources := NewSourcesCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := sources.Run(); err != nil {
		t.Errorf("Missing sources dir should not be an error, got %v", err)
	}
}
