package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VirajSanda/football-poster/app/birthdays"
	"github.com/VirajSanda/football-poster/app/cfg"
	"github.com/VirajSanda/football-poster/app/database"
	"github.com/VirajSanda/football-poster/app/facebook"
	"github.com/VirajSanda/football-poster/app/scraper"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	scrapers        []scraper.Scraper
	newsRepo        database.NewsRepository
	fb              *facebook.Client
	birthdaysClient *birthdays.Client
	dryRun          bool
	interval        time.Duration
	workerCount     int
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	taskQueue       chan TaskInterface
	running         atomic.Bool
	lastBirthdayDay string
}

func NewScheduler(scrapers []scraper.Scraper, newsRepo database.NewsRepository,
	fb *facebook.Client, birthdaysClient *birthdays.Client) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		scrapers:        scrapers,
		newsRepo:        newsRepo,
		fb:              fb,
		birthdaysClient: birthdaysClient,
		dryRun:          cfg.DryRun,
		interval:        time.Duration(cfg.IntervalHours) * time.Hour,
		workerCount:     cfg.WorkerCount,
		ctx:             ctx,
		cancel:          cancel,
		taskQueue:       make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.running.Store(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.running.Store(false)
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) IsAlive() bool {
	return s.running.Load()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	scrapeTask := NewScrapeNewsTask(s.scrapers, s.newsRepo, s.fb, s.dryRun)
	if err := s.EnqueueTask(scrapeTask); err != nil {
		slog.Warn("Failed to enqueue ScrapeNewsTask", "error", err)
	}

	scheduleTask := NewSchedulePostsTask(s.newsRepo, s.fb, s.dryRun)
	if err := s.EnqueueTask(scheduleTask); err != nil {
		slog.Warn("Failed to enqueue SchedulePostsTask", "error", err)
	}

	// One birthday run per UTC day, whichever tick crosses the date first.
	today := time.Now().UTC().Format("2006-01-02")
	if s.lastBirthdayDay != today {
		birthdayTask := NewBirthdayTask(s.birthdaysClient, s.fb, s.dryRun)
		if err := s.EnqueueTask(birthdayTask); err != nil {
			slog.Warn("Failed to enqueue BirthdayTask", "error", err)
		} else {
			s.lastBirthdayDay = today
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
