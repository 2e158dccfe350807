// Package scheduler runs recurring in-process jobs on gocron
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// GocronScheduler creates tasks that each own a gocron scheduler, so stopping
// one task never affects another.
type GocronScheduler struct {
	logger ports.Logger
}

func NewGocronScheduler(logger ports.Logger) *GocronScheduler {
	return &GocronScheduler{logger: logger}
}

func (s *GocronScheduler) NewTask(name string, interval time.Duration, job func(ctx context.Context)) ports.RecurringTask {
	return &Task{
		name:     name,
		interval: interval,
		job:      job,
		logger:   s.logger,
	}
}

// Task is a ports.RecurringTask. The first run happens one interval after Start
// and runs never overlap.
type Task struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context)
	logger   ports.Logger

	mu        sync.Mutex
	scheduler *gocron.Scheduler
	cancel    context.CancelFunc
}

func (t *Task) Start(ctx context.Context) error {
	if t.interval <= 0 {
		return errors.NewConfigurationError(fmt.Sprintf("task %s: interval must be positive", t.name), nil)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.scheduler != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := gocron.NewScheduler(time.UTC)
	_, err := s.Every(t.interval).WaitForSchedule().SingletonMode().Do(func() {
		if runCtx.Err() != nil {
			return
		}
		t.job(runCtx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("schedule task %s: %w", t.name, err)
	}

	s.StartAsync()
	t.scheduler = s
	t.cancel = cancel

	t.logger.Debug("Recurring task started",
		ports.F("task", t.name),
		ports.F("interval", t.interval.String()))
	return nil
}

// Stop cancels the task context and stops its scheduler. Safe to call repeatedly.
func (t *Task) Stop() {
	t.mu.Lock()
	s, cancel := t.scheduler, t.cancel
	t.scheduler, t.cancel = nil, nil
	t.mu.Unlock()

	if s == nil {
		return
	}
	cancel()
	s.Stop()
	t.logger.Debug("Recurring task stopped", ports.F("task", t.name))
}

func (t *Task) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduler != nil
}

func (t *Task) Name() string {
	return t.name
}
