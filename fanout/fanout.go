package fanout

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/xraph/conveyor/chainq"
)

// Chain dispatches queued actions across a fixed set of worker
// goroutines. Construct with New; the zero value is not usable.
type Chain struct {
	queue    *chainq.Chain[func()]
	logger   *slog.Logger
	detached bool

	wg        sync.WaitGroup
	destroyed atomic.Bool
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the structured logger workers report panics to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) { c.logger = l }
}

// WithDetachedWorkers makes Destroy return without waiting for the
// workers to observe the teardown and exit. Detached workers never
// outlive the process gracefully; prefer the default join unless the
// chain is torn down on a path that cannot afford to block.
func WithDetachedWorkers() Option {
	return func(c *Chain) { c.detached = true }
}

// New creates a Chain and launches workers goroutines draining it.
// A non-positive workers count is treated as 1.
func New(workers int, opts ...Option) *Chain {
	if workers < 1 {
		workers = 1
	}
	c := &Chain{
		queue:  chainq.New[func()](),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("action chain starting", slog.Int("workers", workers))
	for i := range workers {
		c.wg.Add(1)
		go c.workerLoop(i)
	}
	return c
}

// Enqueue appends an action for execution. Actions enqueued after
// Destroy are dropped. Nil actions are ignored.
func (c *Chain) Enqueue(action func()) {
	if action == nil {
		return
	}
	c.queue.Enqueue(action)
}

// IsEmpty reports whether no actions are pending. Actions already
// picked up by a worker no longer count as pending.
func (c *Chain) IsEmpty() bool { return c.queue.IsEmpty() }

// Destroy tears the chain down: pending actions are discarded, blocked
// workers wake and exit, and later enqueues are dropped. Unless the
// chain was built WithDetachedWorkers, Destroy waits for every worker
// to finish its action in flight and exit. Destroy is idempotent.
func (c *Chain) Destroy() {
	if !c.destroyed.CompareAndSwap(false, true) {
		return
	}
	c.queue.Destroy()
	if !c.detached {
		c.wg.Wait()
	}
	c.logger.Debug("action chain destroyed")
}

func (c *Chain) workerLoop(id int) {
	defer c.wg.Done()
	for {
		action, ok := c.queue.Dequeue()
		if !ok {
			return
		}
		c.run(id, action)
	}
}

// run executes one action, containing any panic to this iteration.
func (c *Chain) run(id int, action func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("action panicked",
				slog.Int("worker", id),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	action()
}
