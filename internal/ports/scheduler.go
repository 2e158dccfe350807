package ports

import (
	"context"
	"time"
)

// RecurringTask runs a job on a fixed interval until stopped
type RecurringTask interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	Name() string
}

// TaskScheduler creates recurring tasks
type TaskScheduler interface {
	NewTask(name string, interval time.Duration, job func(ctx context.Context)) RecurringTask
}
