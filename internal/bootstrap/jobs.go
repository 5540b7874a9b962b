package bootstrap

import (
	"context"

	"github.com/osse101/StudyGarden_Go/internal/eventlog"
	"github.com/osse101/StudyGarden_Go/internal/scheduler"
	"github.com/osse101/StudyGarden_Go/internal/worker"
)

// BackgroundJobs owns the worker pool and its scheduler
type BackgroundJobs struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartBackgroundJobs schedules event log retention on a small pool
func StartBackgroundJobs(eventLogSvc eventlog.Service, retentionDays int) *BackgroundJobs {
	pool := worker.NewPool(BackgroundWorkers, BackgroundQueueSize)
	pool.Start()

	cleanup := eventlog.NewCleanupJob(eventLogSvc, retentionDays)
	sched := scheduler.New(pool)
	sched.Schedule(JobNameEventCleanup, EventCleanupInterval, worker.JobFunc(func(ctx context.Context) error {
		_, err := cleanup.Process(ctx)
		return err
	}))

	return &BackgroundJobs{Pool: pool, Scheduler: sched}
}

// Stop halts scheduling before stopping the workers
func (j *BackgroundJobs) Stop() {
	j.Scheduler.Stop()
	j.Pool.Stop()
}
