package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/news"
	"github.com/VirajSanda/football-poster/app/scraper"
)

// recentPostsWindow bounds the Facebook lookback when guarding against
// reposts of something the page already published.
const recentPostsWindow = 48 * time.Hour

// ScrapeNewsTask runs every scraper, keeps the football stories, drops
// duplicates and stores the survivors with fresh sequence numbers.
type ScrapeNewsTask struct {
	Task
	scrapers []scraper.Scraper
	newsRepo database.NewsRepository
	fb       *facebook.Client
	dryRun   bool
}

func NewScrapeNewsTask(scrapers []scraper.Scraper, newsRepo database.NewsRepository, fb *facebook.Client, dryRun bool) *ScrapeNewsTask {
	return &ScrapeNewsTask{
		Task:     NewTask(TaskTypeScrapeNews),
		scrapers: scrapers,
		newsRepo: newsRepo,
		fb:       fb,
		dryRun:   dryRun,
	}
}

func (t *ScrapeNewsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	candidates := t.collectCandidates(ctx)
	slog.Info("Scrape finished", "candidates", len(candidates))

	football := candidates[:0]
	for _, a := range candidates {
		if news.LooksLikeFootball(a.Title, a.Summary, a.URL) {
			football = append(football, a)
		}
	}
	slog.Info("Football filter applied", "kept", len(football), "dropped", len(candidates)-len(football))

	deduper, err := t.buildDeduper(ctx)
	if err != nil {
		return err
	}

	var toInsert []news.Article
	dropped := make(map[news.DropReason]int)
	for _, a := range football {
		hash := news.ContentHash(a.Title, a.Summary)
		if reason := deduper.Check(a, hash); reason != news.DropNone {
			dropped[reason]++
			slog.Debug("Duplicate dropped", "reason", string(reason), "title", a.Title)
			continue
		}
		deduper.Accept(a, hash)
		toInsert = append(toInsert, a)
	}

	if len(toInsert) == 0 {
		slog.Info("No new items to insert")
		return nil
	}

	maxSeq, err := t.newsRepo.GetMaxSeq()
	if err != nil {
		return err
	}

	inserted := 0
	withoutImage := 0
	for i, a := range toInsert {
		rec := &news.Record{
			Title:    a.Title,
			Summary:  a.Summary,
			URL:      a.URL,
			ImageURL: a.ImageURL,
			VideoURL: a.VideoURL,
			Source:   a.Source,
			Hash:     news.ContentHash(a.Title, a.Summary),
			Seq:      maxSeq + int64(i) + 1,
		}

		if a.ImageURL == "" {
			withoutImage++
			slog.Warn("Article has no image", "title", a.Title, "url", a.URL, "source", a.Source)
		}

		if t.dryRun {
			slog.Info("Dry run, would insert", "seq", rec.Seq, "title", rec.Title, "url", rec.URL)
			continue
		}

		if _, err := t.newsRepo.InsertNews(rec); err != nil {
			// A concurrent insert can still hit the URL unique constraint.
			slog.Warn("Insert failed", "title", rec.Title, "error", err)
			continue
		}
		inserted++
	}

	slog.Info("Task completed",
		"type", "ScrapeNews",
		"duration", t.GetDuration(),
		"candidates", len(candidates),
		"football", len(football),
		"inserted", inserted,
		"without_image", withoutImage,
		"dropped_url", dropped[news.DropExactURL],
		"dropped_hash", dropped[news.DropExactHash],
		"dropped_similar", dropped[news.DropBatchSim],
		"dropped_recent", dropped[news.DropRecentPost])

	return nil
}

// collectCandidates runs every scraper; a failing source is logged and
// skipped so one dead site never starves the pipeline.
func (t *ScrapeNewsTask) collectCandidates(ctx context.Context) []news.Article {
	var all []news.Article
	for _, s := range t.scrapers {
		articles, err := s.Scrape(ctx)
		if err != nil {
			slog.Error("Scraper failed", "scraper", s.Name(), "error", err)
			continue
		}
		slog.Info("Scraper finished", "scraper", s.Name(), "articles", len(articles))
		all = append(all, articles...)
	}
	return all
}

// buildDeduper seeds the duplicate guards from the database and the page's
// recent posts. A Facebook outage degrades the recent-post guard to empty
// rather than blocking the scrape.
func (t *ScrapeNewsTask) buildDeduper(ctx context.Context) (*news.Deduper, error) {
	urls, err := t.newsRepo.GetExistingURLs()
	if err != nil {
		return nil, err
	}
	hashes, err := t.newsRepo.GetExistingHashes()
	if err != nil {
		return nil, err
	}

	var recentMessages []string
	if t.fb.Configured() {
		posts, err := t.fb.GetRecentPosts(ctx, time.Now().UTC().Add(-recentPostsWindow))
		if err != nil {
			slog.Warn("Failed to fetch recent Facebook posts, continuing without them", "error", err)
		}
		for _, p := range posts {
			recentMessages = append(recentMessages, p.Message)
		}
	}

	return news.NewDeduper(urls, hashes, recentMessages), nil
}
