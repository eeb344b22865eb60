package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/news"
	"github.com/VirajSanda/football-poster/app/scraper"
	"github.com/VirajSanda/football-poster/app/tasks"
	"github.com/VirajSanda/football-poster/app/telegram"
	"github.com/VirajSanda/football-poster/app/youtube"
)

func NewHandler(newsRepo database.NewsRepository, teleRepo database.TelePostRepository,
	videoRepo database.VideoUploadRepository, fb *facebook.Client, ingestor IngestorInterface,
	uploader UploaderInterface, scrapers []scraper.Scraper, sources *scraper.SourcesCache,
	scheduler tasks.TaskSchedulerInterface, dryRun bool) *Handler {
	return &Handler{
		newsRepo:  newsRepo,
		teleRepo:  teleRepo,
		videoRepo: videoRepo,
		fb:        fb,
		ingestor:  ingestor,
		uploader:  uploader,
		scrapers:  scrapers,
		sources:   sources,
		scheduler: scheduler,
		dryRun:    dryRun,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"worker_alive": h.scheduler.IsAlive(),
	}

	health["scrapers"] = len(h.scrapers)
	health["rss_sources"] = h.sources.GetSourceCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	total, posted, scheduled, err := h.newsRepo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"posted":      posted,
		"scheduled":   scheduled,
		"unscheduled": total - scheduled - posted,
		"facebook":    h.fb.Configured(),
		"youtube":     h.uploader.Configured(),
	})
}

func (h *Handler) APIScrape(c *gin.Context) {
	scrapeTask := tasks.NewScrapeNewsTask(h.scrapers, h.newsRepo, h.fb, h.dryRun)
	if err := h.scheduler.EnqueueTask(scrapeTask); err != nil {
		slog.Error("Error enqueueing scrape task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue scrape task",
			"details": err.Error(),
		})
		return
	}

	scheduleTask := tasks.NewSchedulePostsTask(h.newsRepo, h.fb, h.dryRun)
	if err := h.scheduler.EnqueueTask(scheduleTask); err != nil {
		slog.Error("Error enqueueing schedule task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue schedule task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Scrape and schedule tasks enqueued successfully",
		"tasks": []gin.H{
			{
				"id":   scrapeTask.ID,
				"type": scrapeTask.Type,
			},
			{
				"id":   scheduleTask.ID,
				"type": scheduleTask.Type,
			},
		},
	})
}

func (h *Handler) APIListNews(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.newsRepo.ListNews(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news":  records,
		"total": len(records),
	})
}

func (h *Handler) APIGetNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
		return
	}

	rec, err := h.newsRepo.GetNews(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_news", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// APIPublishNews pushes a stored item to Facebook immediately, outside the
// slot rotation.
func (h *Handler) APIPublishNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
		return
	}

	rec, err := h.newsRepo.GetNews(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_news", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
		return
	}
	if rec.Posted {
		c.JSON(http.StatusConflict, gin.H{"error": "News item already posted", "fb_post_id": rec.FBPostID})
		return
	}
	if rec.ScheduledTime != nil {
		// Facebook already holds a scheduled copy; posting again would
		// publish the story twice.
		c.JSON(http.StatusConflict, gin.H{
			"error":          "News item already scheduled",
			"scheduled_time": rec.ScheduledTime.Format(time.RFC3339),
		})
		return
	}

	summary := rec.Summary
	if summary == "" {
		summary = news.FallbackSummary(rec.Source)
	}
	message := news.ComposeMessage(rec.Title, summary, news.HashtagsForSource(rec.Source))

	if h.dryRun {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"dry_run": true,
			"message": message,
		})
		return
	}

	result, err := h.fb.PublishOrSchedule(c.Request.Context(), facebook.Post{
		Message:  message,
		Link:     rec.URL,
		ImageURL: rec.ImageURL,
		VideoURL: rec.VideoURL,
	}, nil)
	if err != nil {
		slog.Error("Publish failed", "id", id, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to publish post",
			"details": err.Error(),
		})
		return
	}

	if err := h.newsRepo.MarkPosted(rec.ID, result.PostID, time.Now().UTC()); err != nil {
		slog.Error("Post published but marking failed", "id", id, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"fb_post_id": result.PostID,
		"media_type": result.MediaType,
	})
}

// TelegramWebhook always answers 200 so Telegram does not retry updates we
// chose to ignore.
func (h *Handler) TelegramWebhook(c *gin.Context) {
	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		slog.Warn("Malformed Telegram update", "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	status, err := h.ingestor.HandleUpdate(c.Request.Context(), update)
	if err != nil {
		slog.Error("Telegram update failed", "status", string(status), "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

func (h *Handler) APIListTelegramPosts(c *gin.Context) {
	posts, err := h.teleRepo.List(50)
	if err != nil {
		slog.Error("Database error", "operation", "list_tele_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *Handler) APIUploadVideo(c *gin.Context) {
	if !h.uploader.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "YouTube credentials not configured"})
		return
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing video file", "details": err.Error()})
		return
	}

	title, _, _ := youtube.MetadataFromFilename(fileHeader.Filename)
	uploadID, err := h.videoRepo.Insert(&database.VideoUpload{
		FileName: fileHeader.Filename,
		Title:    title,
		Status:   "pending",
	})
	if err != nil {
		slog.Error("Database error", "operation", "insert_video_upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read video file", "details": err.Error()})
		return
	}
	defer file.Close()

	youtubeID, err := h.uploader.UploadStream(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		slog.Error("YouTube upload failed", "file", fileHeader.Filename, "error", err)
		if dbErr := h.videoRepo.SetResult(uploadID, "", "failed", err.Error()); dbErr != nil {
			slog.Error("Database error", "operation", "set_video_result", "error", dbErr)
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "YouTube upload failed",
			"details": err.Error(),
		})
		return
	}

	if err := h.videoRepo.SetResult(uploadID, youtubeID, "uploaded", ""); err != nil {
		slog.Error("Database error", "operation", "set_video_result", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"youtube_id": youtubeID,
		"title":      title,
	})
}

func (h *Handler) APIListVideos(c *gin.Context) {
	uploads, err := h.videoRepo.List(50)
	if err != nil {
		slog.Error("Database error", "operation", "list_video_uploads", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploads": uploads,
		"total":   len(uploads),
	})
}
