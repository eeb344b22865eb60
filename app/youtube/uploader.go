package youtube

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const sportsCategoryID = "17"

// Uploader pushes match clips to YouTube using a long-lived refresh token.
type Uploader struct {
	clientID     string
	clientSecret string
	refreshToken string

	// newService is swapped out in tests
	newService func(ctx context.Context, ts oauth2.TokenSource) (*yt.Service, error)
}

func NewUploader(clientID, clientSecret, refreshToken string) *Uploader {
	return &Uploader{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		newService: func(ctx context.Context, ts oauth2.TokenSource) (*yt.Service, error) {
			return yt.NewService(ctx, option.WithTokenSource(ts))
		},
	}
}

func (u *Uploader) Configured() bool {
	return u.clientID != "" && u.clientSecret != "" && u.refreshToken != ""
}

// UploadStream uploads video data as a private video in the sports
// category, deriving all metadata from the filename.
func (u *Uploader) UploadStream(ctx context.Context, r io.Reader, filename string) (string, error) {
	if !u.Configured() {
		return "", fmt.Errorf("youtube credentials not configured")
	}

	conf := &oauth2.Config{
		ClientID:     u.clientID,
		ClientSecret: u.clientSecret,
		Endpoint:     google.Endpoint,
	}
	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: u.refreshToken})

	service, err := u.newService(ctx, tokenSource)
	if err != nil {
		return "", fmt.Errorf("failed to create youtube service: %w", err)
	}

	title, description, tags := MetadataFromFilename(filename)

	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       title,
			Description: description,
			Tags:        tags,
			CategoryId:  sportsCategoryID,
		},
		Status: &yt.VideoStatus{PrivacyStatus: "private"},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video)
	resp, err := call.Media(r).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("video upload failed: %w", err)
	}

	return resp.Id, nil
}

// MetadataFromFilename turns a raw upload filename into a presentable
// title, description and tag list
func MetadataFromFilename(filename string) (title, description string, tags []string) {
	base := filename
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}

	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	title = strings.TrimSpace(cases.Title(language.English).String(strings.ToLower(base)))
	description = title

	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len(word) <= 2 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, word)
	}

	return title, description, tags
}
