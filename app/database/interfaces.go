package database

import (
	"time"

	"github.com/VirajSanda/football-poster/app/news"
)

type NewsRepository interface {
	GetExistingURLs() (map[string]struct{}, error)
	GetExistingHashes() (map[string]struct{}, error)
	GetMaxSeq() (int64, error)

	InsertNews(rec *news.Record) (int64, error)

	GetUnscheduled() ([]news.Record, error)
	GetLastScheduledTime() (*time.Time, error)
	SetScheduledTime(id int64, scheduled time.Time) error
	MarkPosted(id int64, fbPostID string, postedAt time.Time) error

	GetNews(id int64) (*news.Record, error)
	ListNews(limit int) ([]news.Record, error)
	GetStats() (total, posted, scheduled int, err error)
}

type TelePostRepository interface {
	Exists(channel string, messageID int64) (bool, error)
	Insert(post *TelePost) error
	List(limit int) ([]TelePost, error)
}

type VideoUploadRepository interface {
	Insert(upload *VideoUpload) (int64, error)
	SetResult(id int64, youtubeID, status, errMsg string) error
	List(limit int) ([]VideoUpload, error)
}
