package api

import (
	"context"
	"io"

	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/scraper"
	"github.com/VirajSanda/football-poster/app/tasks"
	"github.com/VirajSanda/football-poster/app/telegram"
	"github.com/VirajSanda/football-poster/app/youtube"
)

type IngestorInterface interface {
	HandleUpdate(ctx context.Context, update telegram.Update) (telegram.Status, error)
}

var _ IngestorInterface = (*telegram.Ingestor)(nil)

type UploaderInterface interface {
	Configured() bool
	UploadStream(ctx context.Context, r io.Reader, filename string) (string, error)
}

var _ UploaderInterface = (*youtube.Uploader)(nil)

type Handler struct {
	newsRepo  database.NewsRepository
	teleRepo  database.TelePostRepository
	videoRepo database.VideoUploadRepository
	fb        *facebook.Client
	ingestor  IngestorInterface
	uploader  UploaderInterface
	scrapers  []scraper.Scraper
	sources   *scraper.SourcesCache
	scheduler tasks.TaskSchedulerInterface
	dryRun    bool
}
