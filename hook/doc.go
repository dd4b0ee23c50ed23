// Package hook defines the lifecycle hook system for conveyor.
// Hooks are notified of engine events (job queued, started, completed,
// failed, rejected, shutdown) and can react to them, typically by
// logging or recording metrics.
//
// Each lifecycle event is a separate interface so a hook opts in only
// to the events it cares about.
package hook
