// Package engine provides the bounded, single-worker job engine: a
// FIFO stream of named jobs drained by at most one worker goroutine.
//
// The engine serializes work for one logical stream. Jobs submitted
// while the engine is running execute strictly in submission order,
// because a single-winner atomic flag guarantees at most one drain
// goroutine is ever alive no matter how many goroutines submit
// concurrently. Producers never block: beyond the configured queue
// capacity, submissions are rejected and the caller decides whether to
// drop, retry, or surface the rejection.
//
// # Building an Engine
//
//	eng := engine.New(
//	    engine.WithCapacity(5000),
//	    engine.WithShutdownGrace(5*time.Second),
//	    engine.WithLogger(logger),
//	    engine.WithMiddleware(middleware.Logging(logger), middleware.Metrics()),
//	)
//	eng.Start()
//	defer eng.Stop()
//
// # Submitting Work
//
//	ok := eng.QueueJob("rebuild-index", "", func() { rebuild() })
//	if !ok {
//	    // engine stopped, at capacity, or rate limited
//	}
//
// # Failure Isolation
//
// A panicking or failing action never halts the drain loop. Panics are
// recovered and converted to errors; errors are passed to the
// configured [ErrorHandler] (or logged by default) and reported to
// JobFailed hooks. The next queued job runs regardless.
//
// # Options
//
//   - [WithCapacity] — bound the pending-job queue depth
//   - [WithDrainWait] — let an idle worker retire after a bounded wait
//   - [WithShutdownGrace] — how long Stop waits for the job in flight
//   - [WithLogger] — structured logger
//   - [WithHooks] — lifecycle hook registry
//   - [WithMiddleware] — wrap job execution (logging, metrics, tracing)
//   - [WithErrorHandler] — decide what happens to failed jobs
//   - [WithLimiter] — per-stream admission control keyed by CommonID
package engine
