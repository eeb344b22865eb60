package tasks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/news"
	"github.com/VirajSanda/football-poster/app/scraper"
)

type fakeNewsRepo struct {
	urls          map[string]struct{}
	hashes        map[string]struct{}
	maxSeq        int64
	inserted      []news.Record
	unscheduled   []news.Record
	lastScheduled *time.Time
	scheduledAt   map[int64]time.Time
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{
		urls:        make(map[string]struct{}),
		hashes:      make(map[string]struct{}),
		scheduledAt: make(map[int64]time.Time),
	}
}

func (r *fakeNewsRepo) GetExistingURLs() (map[string]struct{}, error) { return r.urls, nil }
func (r *fakeNewsRepo) GetExistingHashes() (map[string]struct{}, error) { return r.hashes, nil }
func (r *fakeNewsRepo) GetMaxSeq() (int64, error) { return r.maxSeq, nil }

func (r *fakeNewsRepo) InsertNews(rec *news.Record) (int64, error) {
	if _, ok := r.urls[rec.URL]; ok {
		return 0, fmt.Errorf("UNIQUE constraint failed: news.url")
	}
	r.urls[rec.URL] = struct{}{}
	rec.ID = int64(len(r.inserted) + 1)
	r.inserted = append(r.inserted, *rec)
	return rec.ID, nil
}

func (r *fakeNewsRepo) GetUnscheduled() ([]news.Record, error) { return r.unscheduled, nil }
func (r *fakeNewsRepo) GetLastScheduledTime() (*time.Time, error) { return r.lastScheduled, nil }
func (r *fakeNewsRepo) SetScheduledTime(id int64, s time.Time) error {
	r.scheduledAt[id] = s
	return nil
}
func (r *fakeNewsRepo) MarkPosted(id int64, fbPostID string, postedAt time.Time) error { return nil }
func (r *fakeNewsRepo) GetNews(id int64) (*news.Record, error) { return nil, nil }
func (r *fakeNewsRepo) ListNews(limit int) ([]news.Record, error) { return nil, nil }
func (r *fakeNewsRepo) GetStats() (int, int, int, error) { return 0, 0, 0, nil }

var _ database.NewsRepository = (*fakeNewsRepo)(nil)

type fakeScraper struct {
	name     string
	articles []news.Article
	err      error
}

func (s *fakeScraper) Name() string { return s.name }

func (s *fakeScraper) Scrape(ctx context.Context) ([]news.Article, error) {
	return s.articles, s.err
}

func TestScrapeNewsTaskInsertsFootballOnly(t *testing.T) {
	repo := newFakeNewsRepo()
	repo.maxSeq = 7

	scrapers := []scraper.Scraper{
		&fakeScraper{
			name: "test",
			articles: []news.Article{
				{Title: "Arsenal seal late transfer for winger", Summary: "Premier League deal", URL: "https://example.com/a", Source: "Test"},
				{Title: "Stock market rallies on rate cut hopes", Summary: "Markets up", URL: "https://example.com/b", Source: "Test"},
				{Title: "Liverpool name starting lineup for derby", Summary: "Team news", URL: "https://example.com/c", Source: "Test"},
			},
		},
	}

	task := NewScrapeNewsTask(scrapers, repo, facebook.NewClient("", "", ""), false)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(repo.inserted) != 2 {
		t.Fatalf("Expected 2 inserted records, got %d", len(repo.inserted))
	}
	if repo.inserted[0].Seq != 8 || repo.inserted[1].Seq != 9 {
		t.Errorf("Expected sequence numbers 8 and 9, got %d and %d",
			repo.inserted[0].Seq, repo.inserted[1].Seq)
	}
	for _, rec := range repo.inserted {
		if rec.Hash == "" {
			t.Errorf("Record %q inserted without content hash", rec.Title)
		}
	}
}

func TestScrapeNewsTaskSkipsKnownURLs(t *testing.T) {
	repo := newFakeNewsRepo()
	repo.urls["https://example.com/known"] = struct{}{}

	scrapers := []scraper.Scraper{
		&fakeScraper{
			name: "test",
			articles: []news.Article{
				{Title: "Chelsea agree transfer for striker", URL: "https://example.com/known", Source: "Test"},
				{Title: "Barcelona confirm new manager appointment", URL: "https://example.com/fresh", Source: "Test"},
			},
		},
	}

	task := NewScrapeNewsTask(scrapers, repo, facebook.NewClient("", "", ""), false)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("Expected 1 inserted record, got %d", len(repo.inserted))
	}
	if repo.inserted[0].URL != "https://example.com/fresh" {
		t.Errorf("Wrong record inserted: %s", repo.inserted[0].URL)
	}
}

func TestScrapeNewsTaskFailingScraperDoesNotStarvePipeline(t *testing.T) {
	repo := newFakeNewsRepo()

	scrapers := []scraper.Scraper{
		&fakeScraper{name: "dead", err: fmt.Errorf("connection refused")},
		&fakeScraper{
			name: "alive",
			articles: []news.Article{
				{Title: "Real Madrid complete signing of midfielder", URL: "https://example.com/x", Source: "Alive"},
			},
		},
	}

	task := NewScrapeNewsTask(scrapers, repo, facebook.NewClient("", "", ""), false)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("Expected 1 inserted record, got %d", len(repo.inserted))
	}
}

func TestScrapeNewsTaskDryRunInsertsNothing(t *testing.T) {
	repo := newFakeNewsRepo()

	scrapers := []scraper.Scraper{
		&fakeScraper{
			name: "test",
			articles: []news.Article{
				{Title: "Bayern seal transfer for defender", URL: "https://example.com/d", Source: "Test"},
			},
		},
	}

	task := NewScrapeNewsTask(scrapers, repo, facebook.NewClient("", "", ""), true)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(repo.inserted) != 0 {
		t.Fatalf("Dry run inserted %d records", len(repo.inserted))
	}
}
