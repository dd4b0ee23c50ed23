// Package job defines the unit of work the engine drains: a named,
// optionally tagged, zero-argument action.
//
// A [Job] carries a Name for diagnostics, an optional CommonID that
// groups related jobs (bulk cancellation, per-stream admission), and
// the Action to run. Jobs are created through the [New] factory rather
// than a literal so instances can later be pooled without changing
// callers.
//
// Jobs are fire-and-forget values: a producer creates one, the engine
// dequeues it on its worker goroutine, runs the action once, and
// discards it. A job is never re-run and never shared after execution.
package job
