package middleware

import (
	"context"
	"time"

	"github.com/xraph/conveyor/job"
)

// Timeout returns middleware that enforces a per-job execution deadline.
// A context.WithTimeout wraps the handler call; when the deadline is
// exceeded the context is cancelled and context-aware actions should
// return context.DeadlineExceeded. A non-positive d disables the
// deadline.
//
// Note that a plain zero-argument action cannot be interrupted; the
// deadline only helps work that observes the context.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) error {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
