package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VirajSanda/football-poster/app/api"
	"github.com/VirajSanda/football-poster/app/birthdays"
	"github.com/VirajSanda/football-poster/app/cfg"
	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/scraper"
	"github.com/VirajSanda/football-poster/app/tasks"
	"github.com/VirajSanda/football-poster/app/telegram"
	"github.com/VirajSanda/football-poster/app/youtube"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	c, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	log.Println("Starting Football Poster...")

	log.Println("Connecting to database...")
	db, err := database.NewConnection(c.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()
	log.Printf("Connected to database at %s", c.DBPath)

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Printf("Database schema version %d (dirty: %t)", version, dirty)

	newsRepo := database.NewNewsRepository(db)
	teleRepo := database.NewTelePostRepository(db)
	videoRepo := database.NewVideoUploadRepository(db)

	log.Printf("Loading RSS sources from %s...", c.SourcesDir)
	sources := scraper.NewSourcesCache(c.SourcesDir)
	if err := sources.Run(); err != nil {
		log.Fatal("Failed to load RSS sources: ", err)
	}
	log.Printf("Loaded %d RSS sources", sources.GetSourceCount())

	httpClient := scraper.NewHTTPClient()
	scrapers := scraper.DefaultScrapers(httpClient, c.UserAgent)
	scrapers = append(scrapers, scraper.NewRSSScraper(sources, httpClient, c.UserAgent))
	log.Printf("Initialized %d scrapers", len(scrapers))

	fb := facebook.NewClient(c.FacebookPageID, c.FacebookAccessToken, c.GraphAPIVersion)
	if !fb.Configured() {
		log.Println("Facebook credentials not set, publishing disabled")
	}

	if !c.Worker {
		runOnce(scrapers, newsRepo, fb, c.DryRun)
		return
	}

	birthdaysClient := birthdays.NewClient()
	uploader := youtube.NewUploader(c.YouTubeClientID, c.YouTubeClientSecret, c.YouTubeRefreshToken)
	ingestor := telegram.NewIngestor(c.TelegramBotToken, c.AllowedChannels, fb, teleRepo)

	log.Printf("Starting background scheduler with %d workers...", c.WorkerCount)
	scheduler := tasks.NewScheduler(scrapers, newsRepo, fb, birthdaysClient)
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(newsRepo, teleRepo, videoRepo, fb, ingestor, uploader,
		scrapers, sources, scheduler, c.DryRun)
	server := api.NewServer(apiHandler, c.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Football Poster started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("Football Poster shutdown complete")
}

// runOnce executes a single scrape and schedule cycle synchronously, for
// cron style deployments.
func runOnce(scrapers []scraper.Scraper, newsRepo database.NewsRepository,
	fb *facebook.Client, dryRun bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("Running single scrape and schedule cycle...")

	scrapeTask := tasks.NewScrapeNewsTask(scrapers, newsRepo, fb, dryRun)
	scrapeTask.Start()
	if err := scrapeTask.Execute(ctx); err != nil {
		log.Fatal("Scrape failed: ", err)
	}

	scheduleTask := tasks.NewSchedulePostsTask(newsRepo, fb, dryRun)
	scheduleTask.Start()
	if err := scheduleTask.Execute(ctx); err != nil {
		log.Fatal("Scheduling failed: ", err)
	}

	log.Println("Cycle complete")
}
