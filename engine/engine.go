package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xraph/conveyor"
	"github.com/xraph/conveyor/chainq"
	"github.com/xraph/conveyor/hook"
	"github.com/xraph/conveyor/job"
	"github.com/xraph/conveyor/limit"
	"github.com/xraph/conveyor/middleware"
)

// ErrorHandler decides what happens when a job's action returns an
// error or panics. The engine's default handler logs the failure.
type ErrorHandler func(j *job.Job, err error)

// Engine serializes a stream of named jobs onto at most one drain
// goroutine, with a bounded pending-queue depth. It is safe for any
// number of goroutines to submit concurrently.
type Engine struct {
	queue         *chainq.Chain[*job.Job]
	capacity      int
	drainWait     time.Duration
	shutdownGrace time.Duration
	logger        *slog.Logger
	hooks         *hook.Registry
	limiter       *limit.Limiter
	onError       ErrorHandler
	userMW        []middleware.Middleware
	mw            middleware.Middleware

	running atomic.Bool
	current atomic.Pointer[job.Job]
	wg      sync.WaitGroup

	// workerActive is the single-winner flag guaranteeing at most one
	// drain goroutine at a time: 0 = idle, 1 = draining.
	workerActive atomic.Int32

	// drainStarts counts drain goroutine launches, for diagnostics.
	drainStarts atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithCapacity bounds the pending-job queue depth. Submissions at or
// over the bound are rejected, never blocked.
func WithCapacity(n int) Option {
	return func(e *Engine) { e.capacity = n }
}

// WithDrainWait bounds how long an idle drain worker waits for the next
// job before retiring. Zero (the default) waits indefinitely; the
// worker then retires only on Stop. A bounded wait trades a little
// start/stop churn for a goroutine-free engine when traffic is bursty.
func WithDrainWait(d time.Duration) Option {
	return func(e *Engine) { e.drainWait = d }
}

// WithShutdownGrace sets how long Stop waits for the job in flight to
// finish before giving up on a clean quiesce.
func WithShutdownGrace(d time.Duration) Option {
	return func(e *Engine) { e.shutdownGrace = d }
}

// WithLogger sets the structured logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHooks sets the lifecycle hook registry.
func WithHooks(r *hook.Registry) Option {
	return func(e *Engine) { e.hooks = r }
}

// WithMiddleware adds middleware to the execution chain. The engine
// always runs panic recovery as the outermost wrapper, so a panicking
// action cannot kill the drain worker no matter what is configured
// here.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Engine) { e.userMW = append(e.userMW, mws...) }
}

// WithErrorHandler sets the handler invoked when a job fails. It runs
// on the drain goroutine, after JobFailed hooks.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) { e.onError = h }
}

// WithLimiter sets a per-stream admission limiter, keyed by the job's
// CommonID.
func WithLimiter(l *limit.Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// New creates a stopped Engine with the given options.
func New(opts ...Option) *Engine {
	defaults := conveyor.DefaultConfig()
	e := &Engine{
		// Multi-reader chain: the drain worker consumes, but so do the
		// administrative RemoveNextJob / RemoveByCommonID operations.
		queue:         chainq.New[*job.Job](chainq.Counted()),
		capacity:      defaults.Capacity,
		drainWait:     defaults.DrainWait,
		shutdownGrace: defaults.ShutdownGrace,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hooks == nil {
		e.hooks = hook.NewRegistry(e.logger)
	}
	chain := append([]middleware.Middleware{middleware.Recover(e.logger)}, e.userMW...)
	e.mw = middleware.Chain(chain...)
	return e
}

// IsRunning reports whether the engine accepts submissions.
func (e *Engine) IsRunning() bool { return e.running.Load() }

// Depth returns the number of jobs currently pending (not counting the
// job in flight). Advisory under concurrent submission.
func (e *Engine) Depth() int { return e.queue.Count() }

// CurrentJob returns the job presently executing, or nil when the
// worker is idle. Diagnostic only: the returned job must not be
// mutated.
func (e *Engine) CurrentJob() *job.Job { return e.current.Load() }

// Start makes the engine accept submissions and launches an idle drain
// worker. Calling Start on a running engine is a no-op.
func (e *Engine) Start() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.logger.Info("job engine started",
		slog.Int("capacity", e.capacity),
		slog.Duration("drain_wait", e.drainWait),
	)
	e.ensureWorker()
}

// Stop makes the engine reject further submissions, wakes the drain
// worker out of its blocking wait, and waits up to the shutdown grace
// period for the job in flight to finish. The job in flight is never
// interrupted; only the next dequeue attempt observes the stop.
// Calling Stop on a stopped engine is a no-op.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.queue.CancelWait()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("job engine stopped")
	case <-time.After(e.shutdownGrace):
		e.logger.Warn("job engine stop timed out waiting for job in flight",
			slog.String("job", e.CurrentJob().String()),
			slog.Duration("grace", e.shutdownGrace),
		)
	}

	e.hooks.EmitShutdown(context.Background())
}

// QueueJob constructs a job from name, commonID, and action, and
// submits it. It reports whether the job was accepted.
func (e *Engine) QueueJob(name, commonID string, action func()) bool {
	return e.Submit(job.New(name, commonID, action))
}

// Submit enqueues a job for execution. It never blocks; a false return
// means the job was dropped because the engine is stopped, the queue
// is at capacity, or the limiter denied the job's stream.
func (e *Engine) Submit(j *job.Job) bool {
	if !e.running.Load() {
		e.reject(j, conveyor.ErrNotRunning)
		return false
	}

	// Opportunistically restart the drain worker: it may have retired
	// after a bounded idle wait.
	e.ensureWorker()

	if e.limiter != nil && !e.limiter.Admit(j.CommonID) {
		e.reject(j, conveyor.ErrRateLimited)
		return false
	}

	if e.queue.Count() >= e.capacity {
		if e.limiter != nil {
			e.limiter.Done(j.CommonID)
		}
		e.reject(j, conveyor.ErrAtCapacity)
		return false
	}

	e.queue.Enqueue(j)
	e.hooks.EmitJobQueued(context.Background(), j)
	return true
}

// RemoveNextJob removes and returns the next pending job without
// running it, or nil if none is pending. The job in flight is not
// affected.
func (e *Engine) RemoveNextJob() *job.Job {
	j, ok := e.queue.TryDequeue()
	if !ok {
		return nil
	}
	if e.limiter != nil {
		e.limiter.Done(j.CommonID)
	}
	return j
}

// RemoveByCommonID removes every pending job tagged with commonID and
// reports how many were removed. The job in flight is not affected.
// An empty commonID matches only untagged jobs.
func (e *Engine) RemoveByCommonID(commonID string) int {
	removed := e.queue.RemoveIf(func(j *job.Job) bool {
		return j.CommonID == commonID
	})
	if e.limiter != nil {
		for range removed {
			e.limiter.Done(commonID)
		}
	}
	return removed
}

// ensureWorker launches a drain goroutine if none is active. Under a
// burst of concurrent submissions exactly one caller wins the flag and
// starts the worker; the rest are no-ops.
func (e *Engine) ensureWorker() {
	if !e.workerActive.CompareAndSwap(0, 1) {
		return
	}
	e.drainStarts.Add(1)
	e.wg.Add(1)
	go e.drainLoop()
}

func (e *Engine) drainLoop() {
	defer e.wg.Done()
	defer func() {
		e.workerActive.Store(0)
		// A submission may have slipped in between our last empty
		// dequeue and the flag release above; make sure it is not
		// stranded without a worker.
		if e.running.Load() && !e.queue.IsEmpty() {
			e.ensureWorker()
		}
	}()

	for e.running.Load() {
		var j *job.Job
		var ok bool
		if e.drainWait > 0 {
			j, ok = e.queue.DequeueTimeout(e.drainWait)
		} else {
			j, ok = e.queue.Dequeue()
		}
		if !ok {
			// Idle wait elapsed, or the wait was cancelled by Stop.
			return
		}
		e.runJob(j)
	}
}

// runJob executes one job through the middleware chain. Failures are
// isolated here: whatever the action does, the drain loop survives.
func (e *Engine) runJob(j *job.Job) {
	ctx := context.Background()
	e.current.Store(j)
	e.hooks.EmitJobStarted(ctx, j)

	start := time.Now()
	err := e.mw(ctx, j, func(context.Context) error {
		j.Action()
		return nil
	})
	elapsed := time.Since(start)

	if e.limiter != nil {
		e.limiter.Done(j.CommonID)
	}

	if err != nil {
		e.hooks.EmitJobFailed(ctx, j, err)
		if e.onError != nil {
			e.onError(j, err)
		} else {
			e.logger.Error("job failed",
				slog.String("job", j.String()),
				slog.String("error", err.Error()),
			)
		}
	} else {
		e.hooks.EmitJobCompleted(ctx, j, elapsed)
	}

	j.Action = nil // release captured state promptly
	e.current.Store(nil)
}

// reject logs and reports a dropped submission so silent loss is
// observable.
func (e *Engine) reject(j *job.Job, reason error) {
	e.logger.Warn("job rejected",
		slog.String("job", j.String()),
		slog.String("reason", reason.Error()),
	)
	e.hooks.EmitJobRejected(context.Background(), j, reason)
}
