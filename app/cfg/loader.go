package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DBPath string `long:"db-path" env:"DB_PATH" default:"./football-poster.db" description:"Path to the SQLite database file"`

	// Application configuration
	SourcesDir    string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing RSS source configuration files"`
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey  string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	WorkerCount   int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`
	IntervalHours int    `long:"interval" env:"INTERVAL_HOURS" default:"2" description:"Hours between scrape cycles in worker mode"`

	// Facebook page
	FacebookPageID      string `long:"fb-page-id" env:"FB_PAGE_ID" description:"Facebook page ID to publish to"`
	FacebookAccessToken string `long:"fb-access-token" env:"FB_ACCESS_TOKEN" description:"Facebook page access token"`
	GraphAPIVersion     string `long:"graph-api-version" env:"GRAPH_API_VERSION" default:"v19.0" description:"Facebook Graph API version"`

	// Telegram ingestion
	TelegramBotToken string   `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token for channel ingestion"`
	AllowedChannels  []string `long:"allowed-channel" env:"ALLOWED_CHANNELS" env-delim:"," description:"Telegram channel usernames allowed to post"`

	// YouTube uploads
	YouTubeClientID     string `long:"youtube-client-id" env:"YOUTUBE_CLIENT_ID" description:"OAuth client ID for YouTube uploads"`
	YouTubeClientSecret string `long:"youtube-client-secret" env:"YOUTUBE_CLIENT_SECRET" description:"OAuth client secret for YouTube uploads"`
	YouTubeRefreshToken string `long:"youtube-refresh-token" env:"YOUTUBE_REFRESH_TOKEN" description:"OAuth refresh token for YouTube uploads"`

	// Run mode
	DryRun bool `long:"dry-run" env:"DRY_RUN" description:"Run the pipeline without publishing or persisting schedule state"`
	Worker bool `long:"worker" env:"WORKER" description:"Run continuously with the background scheduler"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:              raw.DBPath,
		SourcesDir:          raw.SourcesDir,
		Port:                raw.Port,
		APIAccessKey:        raw.APIAccessKey,
		WorkerCount:         raw.WorkerCount,
		IntervalHours:       raw.IntervalHours,
		FacebookPageID:      raw.FacebookPageID,
		FacebookAccessToken: raw.FacebookAccessToken,
		GraphAPIVersion:     raw.GraphAPIVersion,
		TelegramBotToken:    raw.TelegramBotToken,
		AllowedChannels:     raw.AllowedChannels,
		YouTubeClientID:     raw.YouTubeClientID,
		YouTubeClientSecret: raw.YouTubeClientSecret,
		YouTubeRefreshToken: raw.YouTubeRefreshToken,
		DryRun:              raw.DryRun,
		Worker:              raw.Worker,
		UserAgent:           raw.UserAgent,
		Timezone:            raw.Timezone,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
