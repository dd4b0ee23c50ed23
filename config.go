package conveyor

import "time"

// Config holds the tunable knobs for the concurrency core. Surrounding
// code typically loads these from startup configuration and passes the
// relevant fields to the engine and fanout constructors.
type Config struct {
	// Capacity is the maximum number of jobs the engine will hold
	// pending. Submissions beyond it are rejected, never blocked.
	Capacity int

	// DrainWait bounds how long an idle drain worker blocks waiting for
	// the next job before releasing its slot. Zero means wait forever.
	DrainWait time.Duration

	// ShutdownGrace is the maximum time Stop waits for the job in
	// flight to finish before giving up on a clean quiesce.
	ShutdownGrace time.Duration

	// Workers is the number of persistent workers a fanout chain runs.
	Workers int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:      5000,
		DrainWait:     0,
		ShutdownGrace: 5 * time.Second,
		Workers:       4,
	}
}
