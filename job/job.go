package job

import "fmt"

// Job represents a unit of work to be drained by the engine.
type Job struct {
	// Name identifies the job in logs, hooks, and metrics.
	Name string

	// CommonID optionally tags related jobs so callers can cancel a
	// group in bulk or rate-limit a logical stream. Empty means
	// untagged.
	CommonID string

	// Action is the work itself. The engine nils it after execution so
	// captured state is released as soon as the job is done.
	Action func()
}

// New creates a Job. Use this factory rather than a struct literal;
// it keeps the door open for pooling job instances later without
// touching call sites.
func New(name, commonID string, action func()) *Job {
	return &Job{
		Name:     name,
		CommonID: commonID,
		Action:   action,
	}
}

// String returns a diagnostic label for the job.
func (j *Job) String() string {
	if j == nil {
		return "job(none)"
	}
	if j.CommonID == "" {
		return fmt.Sprintf("job(%s)", j.Name)
	}
	return fmt.Sprintf("job(%s/%s)", j.Name, j.CommonID)
}
