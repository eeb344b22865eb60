package telegram

// Update is the subset of a Telegram webhook update the ingestor cares
// about.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64       `json:"message_id"`
	Chat      Chat        `json:"chat"`
	Caption   string      `json:"caption"`
	Photo     []PhotoSize `json:"photo"`
}

type Chat struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// PhotoSize is one resolution variant of a photo. Telegram orders the
// slice from smallest to largest.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Status classifies what the ingestor did with an update.
type Status string

const (
	StatusIgnored        Status = "ignored"
	StatusIgnoredChannel Status = "ignored_channel"
	StatusNoPhoto        Status = "no_photo"
	StatusDuplicate      Status = "duplicate"
	StatusFileError      Status = "file_error"
	StatusOK             Status = "ok"
)
