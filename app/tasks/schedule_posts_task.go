package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/news"
)

// SchedulePostsTask walks unscheduled records in sequence order and books
// them into two-hour Facebook slots. The slot cursor only advances when a
// post actually went out, so a Graph API failure never burns a slot.
type SchedulePostsTask struct {
	Task
	newsRepo database.NewsRepository
	fb       *facebook.Client
	dryRun   bool
}

func NewSchedulePostsTask(newsRepo database.NewsRepository, fb *facebook.Client, dryRun bool) *SchedulePostsTask {
	return &SchedulePostsTask{
		Task:     NewTask(TaskTypeSchedulePosts),
		newsRepo: newsRepo,
		fb:       fb,
		dryRun:   dryRun,
	}
}

func (t *SchedulePostsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	unscheduled, err := t.newsRepo.GetUnscheduled()
	if err != nil {
		return err
	}
	if len(unscheduled) == 0 {
		slog.Info("No unscheduled posts found")
		return nil
	}
	slog.Info("Scheduling posts", "unscheduled", len(unscheduled))

	recentMessages := t.recentPostMessages(ctx)

	lastScheduled, err := t.newsRepo.GetLastScheduledTime()
	if err != nil {
		return err
	}
	slot := news.NextSlot(lastScheduled, time.Now().UTC())

	var acceptedTitles []string
	scheduled := 0
	skipped := 0

	for _, rec := range unscheduled {
		if t.isDuplicate(rec, acceptedTitles, recentMessages) {
			skipped++
			continue
		}

		summary := rec.Summary
		if summary == "" {
			summary = news.FallbackSummary(rec.Source)
		}
		message := news.ComposeMessage(rec.Title, summary, news.HashtagsForSource(rec.Source))

		if t.dryRun {
			slog.Info("Dry run, would schedule", "seq", rec.Seq, "title", rec.Title, "slot", slot)
			acceptedTitles = append(acceptedTitles, rec.Title)
			slot = slot.Add(news.PostSpacing)
			continue
		}

		result, err := t.fb.PublishOrSchedule(ctx, facebook.Post{
			Message:  message,
			Link:     rec.URL,
			ImageURL: rec.ImageURL,
			VideoURL: rec.VideoURL,
		}, &slot)
		if err != nil {
			slog.Error("Failed to schedule post", "seq", rec.Seq, "title", rec.Title, "error", err)
			continue
		}

		finalSlot := slot
		if result.ScheduledAt != nil {
			finalSlot = *result.ScheduledAt
		}

		if err := t.newsRepo.SetScheduledTime(rec.ID, finalSlot); err != nil {
			slog.Error("Post went out but recording the slot failed", "id", rec.ID, "error", err)
		}

		slog.Info("Post scheduled", "seq", rec.Seq, "title", rec.Title, "slot", finalSlot, "media", result.MediaType)
		acceptedTitles = append(acceptedTitles, rec.Title)
		scheduled++
		slot = finalSlot.Add(news.PostSpacing)
	}

	slog.Info("Task completed",
		"type", "SchedulePosts",
		"duration", t.GetDuration(),
		"scheduled", scheduled,
		"skipped", skipped)

	return nil
}

// isDuplicate re-checks a record right before it is booked: the batch guard
// ran at insert time, but records can sit unscheduled across runs while the
// page publishes similar stories.
func (t *SchedulePostsTask) isDuplicate(rec news.Record, acceptedTitles, recentMessages []string) bool {
	for _, msg := range recentMessages {
		if news.IsNearDuplicate(rec.Title, rec.Summary, msg) {
			slog.Warn("Skipping duplicate of recent page post", "title", rec.Title)
			return true
		}
	}

	for _, title := range acceptedTitles {
		if news.TitleSimilarity(rec.Title, title) >= news.SimilarityThreshold {
			slog.Warn("Skipping near-duplicate within scheduling pass", "title", rec.Title)
			return true
		}
	}

	return false
}

func (t *SchedulePostsTask) recentPostMessages(ctx context.Context) []string {
	if !t.fb.Configured() {
		return nil
	}

	posts, err := t.fb.GetRecentPosts(ctx, time.Now().UTC().Add(-recentPostsWindow))
	if err != nil {
		slog.Warn("Failed to fetch recent Facebook posts, continuing without them", "error", err)
		return nil
	}

	messages := make([]string, 0, len(posts))
	for _, p := range posts {
		messages = append(messages, p.Message)
	}
	return messages
}
