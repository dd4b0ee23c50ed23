package hook

import (
	"context"
	"time"

	"github.com/xraph/conveyor/job"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// JobQueued is called after a job is accepted into the engine's queue.
type JobQueued interface {
	OnJobQueued(ctx context.Context, j *job.Job) error
}

// JobStarted is called when the drain worker begins executing a job.
type JobStarted interface {
	OnJobStarted(ctx context.Context, j *job.Job) error
}

// JobCompleted is called after a job's action returns without error.
type JobCompleted interface {
	OnJobCompleted(ctx context.Context, j *job.Job, elapsed time.Duration) error
}

// JobFailed is called when a job's action returns an error or panics.
// The drain loop keeps running regardless.
type JobFailed interface {
	OnJobFailed(ctx context.Context, j *job.Job, err error) error
}

// JobRejected is called when a submission is turned away. The reason
// is one of the conveyor sentinel errors (ErrNotRunning, ErrAtCapacity,
// ErrRateLimited).
type JobRejected interface {
	OnJobRejected(ctx context.Context, j *job.Job, reason error) error
}

// Shutdown is called once during engine shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
