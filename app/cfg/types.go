package cfg

type Cfg struct {
	// Storage
	DBPath string

	// Application configuration
	SourcesDir    string
	Port          string
	APIAccessKey  string
	WorkerCount   int
	IntervalHours int

	// Facebook page
	FacebookPageID      string
	FacebookAccessToken string
	GraphAPIVersion     string

	// Telegram ingestion
	TelegramBotToken string
	AllowedChannels  []string

	// YouTube uploads
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeRefreshToken string

	// Run mode
	DryRun bool
	Worker bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
