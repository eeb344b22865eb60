package youtube

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestMetadataFromFilename(t *testing.T) {
	title, description, tags := MetadataFromFilename("messi_free-kick_goal.mp4")

	if title != "Messi Free Kick Goal" {
		t.Errorf("Unexpected title: %q", title)
	}
	if description != title {
		t.Errorf("Description should match the title, got %q", description)
	}
	if !reflect.DeepEqual(tags, []string{"messi", "free", "kick", "goal"}) {
		t.Errorf("Unexpected tags: %v", tags)
	}
}

func TestMetadataFromFilenameDedupesTags(t *testing.T) {
	_, _, tags := MetadataFromFilename("goal_of_the_season_goal.mp4")

	count := 0
	for _, tag := range tags {
		if tag == "goal" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected 'goal' tag once, got %d occurrences", count)
	}

	// Short filler words are dropped entirely.
	for _, tag := range tags {
		if tag == "of" {
			t.Error("Two-letter words should not become tags")
		}
	}
}

func TestMetadataFromFilenameNoExtension(t *testing.T) {
	title, _, _ := MetadataFromFilename("highlights")
	if title != "Highlights" {
		t.Errorf("Unexpected title: %q", title)
	}
}

func TestUploadStreamUnconfigured(t *testing.T) {
	u := NewUploader("", "", "")
	if _, err := u.UploadStream(context.Background(), strings.NewReader("data"), "clip.mp4"); err == nil {
		t.Error("Expected error when credentials are missing")
	}
}
