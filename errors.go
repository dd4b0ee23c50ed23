package conveyor

import "errors"

var (
	// Rejection errors. Submission APIs report rejection with a boolean;
	// these sentinels name the reason when it is surfaced to rejection
	// hooks and error handlers.
	ErrNotRunning  = errors.New("conveyor: engine not running")
	ErrAtCapacity  = errors.New("conveyor: queue at capacity")
	ErrRateLimited = errors.New("conveyor: submission rate limited")

	// Lifecycle errors.
	ErrDestroyed = errors.New("conveyor: queue destroyed")
)
