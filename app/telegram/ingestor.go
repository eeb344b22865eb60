package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
)

const defaultAPIBase = "https://api.telegram.org"

// Ingestor forwards photo posts from allowed Telegram channels to the
// Facebook page and records them for idempotency.
type Ingestor struct {
	botToken string
	allowed  map[string]struct{}
	fb       *facebook.Client
	repo     database.TelePostRepository
	http     *http.Client
	apiBase  string
}

func NewIngestor(botToken string, allowedChannels []string, fb *facebook.Client, repo database.TelePostRepository) *Ingestor {
	allowed := make(map[string]struct{}, len(allowedChannels))
	for _, ch := range allowedChannels {
		allowed[ch] = struct{}{}
	}

	return &Ingestor{
		botToken: botToken,
		allowed:  allowed,
		fb:       fb,
		repo:     repo,
		http:     &http.Client{Timeout: 30 * time.Second},
		apiBase:  defaultAPIBase,
	}
}

// HandleUpdate processes one webhook update. All rejections are reported
// as a Status rather than an error; Telegram retries on non-200 responses
// and a bad update should not be retried forever.
func (in *Ingestor) HandleUpdate(ctx context.Context, update Update) (Status, error) {
	msg := update.Message
	if msg == nil {
		return StatusIgnored, nil
	}

	channelID := strconv.FormatInt(msg.Chat.ID, 10)
	if len(in.allowed) > 0 {
		if _, ok := in.allowed[channelID]; !ok {
			slog.Debug("Update from disallowed channel", "channel", msg.Chat.Title, "id", channelID)
			return StatusIgnoredChannel, nil
		}
	}

	if len(msg.Photo) == 0 {
		return StatusNoPhoto, nil
	}

	exists, err := in.repo.Exists(channelID, msg.MessageID)
	if err != nil {
		return StatusFileError, fmt.Errorf("failed to check tele post: %w", err)
	}
	if exists {
		return StatusDuplicate, nil
	}

	// Telegram lists photo sizes smallest first; take the largest.
	fileID := msg.Photo[len(msg.Photo)-1].FileID

	image, err := in.downloadPhoto(ctx, fileID)
	if err != nil {
		slog.Warn("Photo download failed", "channel", msg.Chat.Title, "error", err)
		return StatusFileError, nil
	}

	caption := msg.Caption
	fbCaption := caption
	if msg.Chat.Title != "" {
		fbCaption = fmt.Sprintf("%s\n\n📢 From %s", caption, msg.Chat.Title)
	}

	mediaID, err := in.fb.UploadPhoto(ctx, image)
	if err != nil {
		return StatusFileError, fmt.Errorf("failed to upload photo: %w", err)
	}

	postID, err := in.fb.CreateFeedPost(ctx, fbCaption, mediaID, nil)
	if err != nil {
		return StatusFileError, fmt.Errorf("failed to create feed post: %w", err)
	}

	if err := in.repo.Insert(&database.TelePost{
		Channel:   channelID,
		MessageID: msg.MessageID,
		Caption:   caption,
		FBPostID:  postID,
	}); err != nil {
		return StatusFileError, fmt.Errorf("failed to record tele post: %w", err)
	}

	slog.Info("Forwarded Telegram post", "channel", msg.Chat.Title, "message_id", msg.MessageID, "fb_post", postID)
	return StatusOK, nil
}

// downloadPhoto resolves a file ID to a path via getFile and fetches the
// bytes from the file endpoint.
func (in *Ingestor) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	getFileURL := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", in.apiBase, in.botToken, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getFileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := in.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getFile request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		OK     bool `json:"ok"`
		Result struct {
			FilePath string `json:"file_path"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode getFile response: %w", err)
	}
	if !payload.OK || payload.Result.FilePath == "" {
		return nil, fmt.Errorf("getFile returned no file path")
	}

	fileURL := fmt.Sprintf("%s/file/bot%s/%s", in.apiBase, in.botToken, payload.Result.FilePath)

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	fileResp, err := in.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("file download failed: %w", err)
	}
	defer fileResp.Body.Close()

	if fileResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading file", fileResp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(fileResp.Body, 20<<20))
}
