package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Reloader is what the scheduler refreshes on every tick.
type Reloader interface {
	Load(ctx context.Context) error
}

// Scheduler periodically reloads the dataset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables reloading.
func New(interval, timeout time.Duration, reloader Reloader) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{
		scheduler: s,
		reloader:  reloader,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the reload job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: reload disabled")
		return nil
	}

	// The dataset is loaded at startup; the first reload waits one interval.
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.reload)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("scheduler: started", "interval", s.interval)
	return nil
}

func (s *Scheduler) reload() {
	slog.Debug("scheduler: running dataset reload job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.reloader.Load(ctx); err != nil {
		slog.Warn("scheduler: dataset reload failed", "error", err)
		return
	}
	slog.Debug("scheduler: completed dataset reload job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
