package database

import (
	"time"
)

// TelePost records a Telegram channel message that was forwarded to the
// Facebook page. The (channel, message_id) pair makes re-delivered webhook
// updates idempotent.
type TelePost struct {
	ID        int64
	Channel   string
	MessageID int64
	Caption   string
	FBPostID  string
	CreatedAt time.Time
}

// VideoUpload tracks a YouTube upload request and its outcome.
type VideoUpload struct {
	ID        int64
	FileName  string
	Title     string
	YouTubeID string
	Status    string // pending, uploaded, failed
	Error     string
	CreatedAt time.Time
}
