// Package conveyor provides the concurrency core for in-process work
// handoff: a family of linked-chain FIFO queues, a bounded single-worker
// job engine, and a multi-worker action dispatcher.
//
// Conveyor is designed as a library, not a service. Producers on any
// goroutine submit closures or named jobs; dedicated worker goroutines
// drain and execute them asynchronously, decoupling request-handling
// paths from the (possibly slow) work itself.
//
// # Quick Start
//
//	eng := engine.New(
//	    engine.WithCapacity(5000),
//	    engine.WithLogger(logger),
//	)
//	eng.Start()
//	eng.QueueJob("reindex", "", func() { reindex() })
//
// # Architecture
//
// The chainq package is the lowest layer: a sentinel-tail linked queue
// with independent head and tail locks so producers and consumers do
// not contend on the common path. The engine package serializes a
// stream of named jobs onto at most one drain goroutine with bounded
// queue depth (submissions beyond capacity are rejected, never
// blocked). The fanout package fans actions out across N persistent
// workers pulling from one shared queue.
//
// Cross-cutting behaviour (panic recovery, logging, metrics, tracing,
// per-stream admission) composes through the middleware, hook, and
// limit packages.
//
// Conveyor keeps no state outside process memory: there is no
// persistence, no retry, and no delivery guarantee across a crash.
package conveyor
