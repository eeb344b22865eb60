package facebook

import (
	"fmt"
	"time"
)

// Post is the content handed to the publisher. Media URLs are optional;
// the publisher falls back from video to image to a plain link post.
type Post struct {
	Message  string
	Link     string
	ImageURL string
	VideoURL string
}

// Result reports what actually went out after fallbacks were applied.
type Result struct {
	PostID      string
	Message     string
	MediaType   string // video, image or text
	ScheduledAt *time.Time
}

// RecentPost is a page post returned by the Graph API posts edge.
type RecentPost struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	CreatedTime string `json:"created_time"`
}

// GraphError is the error object the Graph API wraps failures in.
type GraphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph API error %d (%s): %s", e.Code, e.Type, e.Message)
}
