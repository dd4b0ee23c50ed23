// Package observability provides an OpenTelemetry-based lifecycle
// metrics hook. Register it on the engine's hook registry to record
// system-wide counters for job queueing, completion, failure, and
// rejection, plus a job latency histogram.
//
// For per-execution tracing and metrics inside the execution chain,
// see the middleware package: middleware.Tracing() and
// middleware.Metrics().
package observability
