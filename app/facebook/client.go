package facebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com"

// Client talks to the Facebook Graph API on behalf of one page.
type Client struct {
	BaseURL     string
	version     string
	pageID      string
	accessToken string
	HTTPClient  *http.Client
}

func NewClient(pageID, accessToken, version string) *Client {
	if version == "" {
		version = "v19.0"
	}
	return &Client{
		BaseURL:     defaultBaseURL,
		version:     version,
		pageID:      pageID,
		accessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.pageID != "" && c.accessToken != ""
}

func (c *Client) edgeURL(edge string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.BaseURL, c.version, c.pageID, edge)
}

// GetRecentPosts returns page posts created since the given time, newest
// first, up to 50.
func (c *Client) GetRecentPosts(ctx context.Context, since time.Time) ([]RecentPost, error) {
	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("fields", "message,created_time")
	params.Set("limit", "50")
	params.Set("since", strconv.FormatInt(since.UTC().Unix(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.edgeURL("posts")+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var payload struct {
		Data  []RecentPost `json:"data"`
		Error *GraphError  `json:"error"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch recent posts: %w", err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("failed to fetch recent posts: %w", payload.Error)
	}

	return payload.Data, nil
}

// UploadPhoto uploads an image as unpublished media and returns its ID for
// later attachment to a feed post.
func (c *Client) UploadPhoto(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("source", "image.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	writer.WriteField("published", "false")
	writer.WriteField("access_token", c.accessToken)
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.edgeURL("photos"), &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var payload struct {
		ID    string      `json:"id"`
		Error *GraphError `json:"error"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("failed to upload photo: %w", payload.Error)
	}
	if payload.ID == "" {
		return "", fmt.Errorf("photo upload returned no media ID")
	}

	return payload.ID, nil
}

// CreateFeedPost publishes or schedules a feed post, optionally with a
// previously uploaded media attachment.
func (c *Client) CreateFeedPost(ctx context.Context, message, mediaID string, scheduled *time.Time) (string, error) {
	form := url.Values{}
	form.Set("message", message)
	form.Set("access_token", c.accessToken)

	if mediaID != "" {
		attached, err := json.Marshal([]map[string]string{{"media_fbid": mediaID}})
		if err != nil {
			return "", fmt.Errorf("failed to encode attached media: %w", err)
		}
		form.Set("attached_media", string(attached))
	}

	if scheduled != nil {
		form.Set("published", "false")
		form.Set("scheduled_publish_time", strconv.FormatInt(scheduled.UTC().Unix(), 10))
	} else {
		form.Set("published", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.edgeURL("feed"), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload struct {
		ID    string      `json:"id"`
		Error *GraphError `json:"error"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", fmt.Errorf("failed to create feed post: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("failed to create feed post: %w", payload.Error)
	}

	return payload.ID, nil
}

// UploadVideo publishes or schedules a video post with the message as its
// description.
func (c *Client) UploadVideo(ctx context.Context, video []byte, description string, scheduled *time.Time) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("source", "video.mp4")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(video); err != nil {
		return "", fmt.Errorf("failed to write video data: %w", err)
	}
	writer.WriteField("description", description)
	writer.WriteField("access_token", c.accessToken)
	if scheduled != nil {
		writer.WriteField("published", "false")
		writer.WriteField("scheduled_publish_time", strconv.FormatInt(scheduled.UTC().Unix(), 10))
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.edgeURL("videos"), &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var payload struct {
		ID    string      `json:"id"`
		Error *GraphError `json:"error"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("failed to upload video: %w", payload.Error)
	}
	if payload.ID == "" {
		return "", fmt.Errorf("video upload returned no ID")
	}

	return payload.ID, nil
}

func (c *Client) do(req *http.Request, payload any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, payload); err != nil {
		return fmt.Errorf("invalid JSON response (status %d): %w", resp.StatusCode, err)
	}

	return nil
}
