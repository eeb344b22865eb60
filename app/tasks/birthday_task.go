package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VirajSanda/football-poster/app/birthdays"
	"github.com/VirajSanda/football-poster/app/facebook"
)

const birthdayLookaheadDays = 7

// BirthdayTask posts a greeting for every footballer whose birthday falls on
// the current UTC date. Greetings go out immediately rather than into the
// news slot rotation.
type BirthdayTask struct {
	Task
	birthdays *birthdays.Client
	fb        *facebook.Client
	dryRun    bool
}

func NewBirthdayTask(client *birthdays.Client, fb *facebook.Client, dryRun bool) *BirthdayTask {
	return &BirthdayTask{
		Task:      NewTask(TaskTypeBirthday),
		birthdays: client,
		fb:        fb,
		dryRun:    dryRun,
	}
}

func (t *BirthdayTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := time.Now().UTC()

	players, err := t.birthdays.GetWeekBirthdays(ctx, now, birthdayLookaheadDays)
	if err != nil {
		return fmt.Errorf("failed to fetch birthdays: %w", err)
	}

	posted := 0
	for _, p := range players {
		if !birthdays.IsBirthdayToday(p, now) {
			continue
		}

		message := fmt.Sprintf("🎉 Happy Birthday %s! 🎂\n\n#Football #HappyBirthday #%s", p.Name, hashtagName(p.Name))

		if t.dryRun {
			slog.Info("Dry run, would post birthday greeting", "player", p.Name)
			posted++
			continue
		}

		result, err := t.fb.PublishOrSchedule(ctx, facebook.Post{
			Message:  message,
			ImageURL: p.PhotoURL,
		}, nil)
		if err != nil {
			slog.Error("Failed to post birthday greeting", "player", p.Name, "error", err)
			continue
		}

		slog.Info("Birthday greeting posted", "player", p.Name, "post_id", result.PostID, "media", result.MediaType)
		posted++
	}

	slog.Info("Task completed",
		"type", "Birthday",
		"duration", t.GetDuration(),
		"players", len(players),
		"posted", posted)

	return nil
}

// hashtagName strips spaces so "Lionel Messi" becomes "#LionelMessi".
func hashtagName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' || r == '\t' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
