package facebook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VirajSanda/football-poster/app/news"
)

const maxMediaBytes = 50 << 20

// PublishOrSchedule sends a post to the page, preferring video over image
// over a plain text post with the article link. Media failures fall through
// to the next format instead of failing the post.
//
// A scheduled time too close to now is pushed out; Facebook rejects
// scheduled posts less than ten minutes ahead.
func (c *Client) PublishOrSchedule(ctx context.Context, post Post, scheduled *time.Time) (*Result, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("facebook credentials not configured")
	}

	scheduled = correctLead(scheduled, time.Now().UTC())

	if post.VideoURL != "" {
		video, err := c.downloadMedia(ctx, post.VideoURL)
		if err == nil {
			postID, err := c.UploadVideo(ctx, video, post.Message, scheduled)
			if err == nil {
				return &Result{PostID: postID, Message: post.Message, MediaType: "video", ScheduledAt: scheduled}, nil
			}
			slog.Warn("Video upload failed, falling back to image", "error", err)
		} else {
			slog.Warn("Video download failed, falling back to image", "url", post.VideoURL, "error", err)
		}
	}

	if post.ImageURL != "" {
		image, err := c.downloadMedia(ctx, post.ImageURL)
		if err == nil {
			mediaID, err := c.UploadPhoto(ctx, image)
			if err == nil {
				postID, err := c.CreateFeedPost(ctx, post.Message, mediaID, scheduled)
				if err != nil {
					return nil, err
				}
				return &Result{PostID: postID, Message: post.Message, MediaType: "image", ScheduledAt: scheduled}, nil
			}
			slog.Warn("Photo upload failed, falling back to text", "error", err)
		} else {
			slog.Warn("Image download failed, falling back to text", "url", post.ImageURL, "error", err)
		}
	}

	message := post.Message
	if post.Link != "" {
		message += "\n\nRead more: " + post.Link
	}

	postID, err := c.CreateFeedPost(ctx, message, "", scheduled)
	if err != nil {
		return nil, err
	}

	return &Result{PostID: postID, Message: message, MediaType: "text", ScheduledAt: scheduled}, nil
}

// correctLead enforces the minimum scheduling lead at the API boundary so
// callers never trip the Graph API's ten minute rule.
func correctLead(scheduled *time.Time, now time.Time) *time.Time {
	if scheduled == nil {
		return nil
	}

	t := scheduled.UTC()
	if t.Before(now.Add(news.MinLead)) {
		t = now.Add(news.LeadMargin)
	}
	return &t
}

func (c *Client) downloadMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, mediaURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read media: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty media response from %s", mediaURL)
	}

	return data, nil
}
