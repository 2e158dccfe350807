package mocks

import (
	"context"
	"sync"
	"time"

	"weathermap.app/internal/ports"
)

// ManualScheduler hands out tasks that only run when Fire is called.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks map[string]*ManualTask
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[string]*ManualTask)}
}

func (s *ManualScheduler) NewTask(name string, interval time.Duration, job func(ctx context.Context)) ports.RecurringTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &ManualTask{name: name, Interval: interval, job: job}
	s.tasks[name] = task
	return task
}

// Task returns the most recently created task with the given name.
func (s *ManualScheduler) Task(name string) *ManualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[name]
}

// ManualTask is a ports.RecurringTask driven by the test.
type ManualTask struct {
	mu       sync.Mutex
	name     string
	Interval time.Duration
	job      func(ctx context.Context)
	running  bool
	ctx      context.Context
	Starts   int
	Stops    int
}

func (t *ManualTask) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
	t.ctx = ctx
	t.Starts++
	return nil
}

func (t *ManualTask) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.Stops++
	}
	t.running = false
}

func (t *ManualTask) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *ManualTask) Name() string {
	return t.name
}

// Fire runs the job once if the task is running and reports whether it ran.
func (t *ManualTask) Fire() bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return false
	}
	ctx := t.ctx
	t.mu.Unlock()
	t.job(ctx)
	return true
}
