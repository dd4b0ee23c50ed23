package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/conveyor/hook"
	"github.com/xraph/conveyor/job"
)

const meterName = "github.com/xraph/conveyor/observability"

// Compile-time interface checks.
var (
	_ hook.Hook         = (*Metrics)(nil)
	_ hook.JobQueued    = (*Metrics)(nil)
	_ hook.JobCompleted = (*Metrics)(nil)
	_ hook.JobFailed    = (*Metrics)(nil)
	_ hook.JobRejected  = (*Metrics)(nil)
)

// Metrics records engine lifecycle metrics. Register it on the hook
// registry to track queue rates, completion counts, failure rates,
// rejected submissions, and job latency.
type Metrics struct {
	queued    metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	rejected  metric.Int64Counter
	latency   metric.Float64Histogram
}

// NewMetrics creates a Metrics hook using the global meter provider.
func NewMetrics() *Metrics {
	return NewMetricsWithMeter(otel.Meter(meterName))
}

// NewMetricsWithMeter creates a Metrics hook recording to the provided
// meter.
func NewMetricsWithMeter(meter metric.Meter) *Metrics {
	queued, _ := meter.Int64Counter("conveyor.jobs.queued",
		metric.WithDescription("Jobs accepted into the pending queue"),
	)
	completed, _ := meter.Int64Counter("conveyor.jobs.completed",
		metric.WithDescription("Jobs whose action finished without error"),
	)
	failed, _ := meter.Int64Counter("conveyor.jobs.failed",
		metric.WithDescription("Jobs whose action returned an error or panicked"),
	)
	rejected, _ := meter.Int64Counter("conveyor.jobs.rejected",
		metric.WithDescription("Submissions turned away at the door"),
	)
	latency, _ := meter.Float64Histogram("conveyor.jobs.latency",
		metric.WithDescription("Job action execution time"),
		metric.WithUnit("s"),
	)
	return &Metrics{
		queued:    queued,
		completed: completed,
		failed:    failed,
		rejected:  rejected,
		latency:   latency,
	}
}

// Name implements hook.Hook.
func (m *Metrics) Name() string { return "observability-metrics" }

// OnJobQueued implements hook.JobQueued.
func (m *Metrics) OnJobQueued(ctx context.Context, j *job.Job) error {
	m.queued.Add(ctx, 1, metric.WithAttributes(jobAttrs(j)...))
	return nil
}

// OnJobCompleted implements hook.JobCompleted.
func (m *Metrics) OnJobCompleted(ctx context.Context, j *job.Job, elapsed time.Duration) error {
	attrs := metric.WithAttributes(jobAttrs(j)...)
	m.completed.Add(ctx, 1, attrs)
	m.latency.Record(ctx, elapsed.Seconds(), attrs)
	return nil
}

// OnJobFailed implements hook.JobFailed.
func (m *Metrics) OnJobFailed(ctx context.Context, j *job.Job, _ error) error {
	m.failed.Add(ctx, 1, metric.WithAttributes(jobAttrs(j)...))
	return nil
}

// OnJobRejected implements hook.JobRejected.
func (m *Metrics) OnJobRejected(ctx context.Context, j *job.Job, reason error) error {
	attrs := append(jobAttrs(j), attribute.String("reason", reason.Error()))
	m.rejected.Add(ctx, 1, metric.WithAttributes(attrs...))
	return nil
}

func jobAttrs(j *job.Job) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("job_name", j.Name)}
}
