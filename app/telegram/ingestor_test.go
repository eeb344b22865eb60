package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
)

type fakeTeleRepo struct {
	posts []database.TelePost
}

func (r *fakeTeleRepo) Exists(channel string, messageID int64) (bool, error) {
	for _, p := range r.posts {
		if p.Channel == channel && p.MessageID == messageID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeleRepo) Insert(post *database.TelePost) error {
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakeTeleRepo) List(limit int) ([]database.TelePost, error) {
	return r.posts, nil
}

func newTestIngestor(t *testing.T) (*Ingestor, *fakeTeleRepo, *string) {
	t.Helper()

	var fbMessage string

	fbMux := http.NewServeMux()
	fbMux.HandleFunc("/v19.0/777/photos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "photo-7"})
	})
	fbMux.HandleFunc("/v19.0/777/feed", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		fbMessage = r.FormValue("message")
		json.NewEncoder(w).Encode(map[string]string{"id": "777_1"})
	})
	fbServer := httptest.NewServer(fbMux)
	t.Cleanup(fbServer.Close)

	fb := facebook.NewClient("777", "test-token", "v19.0")
	fb.BaseURL = fbServer.URL
	fb.HTTPClient = fbServer.Client()

	tgMux := http.NewServeMux()
	tgMux.HandleFunc("/botbot-token/getFile", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]string{"file_path": "photos/file_1.jpg"},
		})
	})
	tgMux.HandleFunc("/file/botbot-token/photos/file_1.jpg", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "fake-photo-bytes")
	})
	tgServer := httptest.NewServer(tgMux)
	t.Cleanup(tgServer.Close)

	repo := &fakeTeleRepo{}
	in := NewIngestor("bot-token", []string{"-100500"}, fb, repo)
	in.apiBase = tgServer.URL
	in.http = tgServer.Client()

	return in, repo, &fbMessage
}

func photoUpdate(chatID int64, messageID int64, caption string) Update {
	return Update{
		Message: &Message{
			MessageID: messageID,
			Chat:      Chat{ID: chatID, Title: "Football Collector", Type: "channel"},
			Caption:   caption,
			Photo: []PhotoSize{
				{FileID: "small", Width: 90, Height: 90},
				{FileID: "large", Width: 1280, Height: 1280},
			},
		},
	}
}

func TestHandleUpdateForwardsPhoto(t *testing.T) {
	in, repo, fbMessage := newTestIngestor(t)

	status, err := in.HandleUpdate(context.Background(), photoUpdate(-100500, 42, "What a goal tonight"))
	if err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("Expected status ok, got %s", status)
	}

	if !strings.HasPrefix(*fbMessage, "What a goal tonight") {
		t.Errorf("Caption should lead the Facebook message, got %q", *fbMessage)
	}
	if !strings.Contains(*fbMessage, "📢 From Football Collector") {
		t.Errorf("Channel attribution missing from message: %q", *fbMessage)
	}

	if len(repo.posts) != 1 {
		t.Fatalf("Expected 1 recorded post, got %d", len(repo.posts))
	}
	if repo.posts[0].Channel != "-100500" || repo.posts[0].MessageID != 42 {
		t.Errorf("Unexpected recorded post: %+v", repo.posts[0])
	}
	if repo.posts[0].FBPostID != "777_1" {
		t.Errorf("Expected FB post ID to be recorded, got %q", repo.posts[0].FBPostID)
	}
}

func TestHandleUpdateDuplicate(t *testing.T) {
	in, _, _ := newTestIngestor(t)

	update := photoUpdate(-100500, 42, "What a goal tonight")

	if status, _ := in.HandleUpdate(context.Background(), update); status != StatusOK {
		t.Fatalf("First delivery should succeed, got %s", status)
	}
	status, err := in.HandleUpdate(context.Background(), update)
	if err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if status != StatusDuplicate {
		t.Errorf("Redelivered update should be a duplicate, got %s", status)
	}
}

func TestHandleUpdateRejections(t *testing.T) {
	in, _, _ := newTestIngestor(t)
	ctx := context.Background()

	if status, _ := in.HandleUpdate(ctx, Update{}); status != StatusIgnored {
		t.Errorf("Update without message should be ignored, got %s", status)
	}

	if status, _ := in.HandleUpdate(ctx, photoUpdate(-999, 1, "spam")); status != StatusIgnoredChannel {
		t.Errorf("Disallowed channel should be ignored, got %s", status)
	}

	noPhoto := Update{Message: &Message{MessageID: 2, Chat: Chat{ID: -100500}}}
	if status, _ := in.HandleUpdate(ctx, noPhoto); status != StatusNoPhoto {
		t.Errorf("Message without photo should report no_photo, got %s", status)
	}
}

func TestHandleUpdateAllChannelsAllowedWhenUnset(t *testing.T) {
	in, _, _ := newTestIngestor(t)
	in.allowed = map[string]struct{}{}

	status, err := in.HandleUpdate(context.Background(), photoUpdate(-42424, 7, "open season"))
	if err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if status != StatusOK {
		t.Errorf("Empty allow list should accept any channel, got %s", status)
	}
}
