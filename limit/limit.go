package limit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Config defines per-stream admission behaviour.
type Config struct {
	// Stream is the stream identifier (matched against job.CommonID).
	Stream string

	// MaxPending caps how many admitted jobs from this stream may be
	// pending or running at once. Zero means no stream-specific cap
	// (the engine's global capacity still applies).
	MaxPending int

	// RateLimit is the maximum sustained submissions per second that
	// may be admitted for this stream. Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the burst size for the token-bucket rate limiter.
	// Defaults to 1 if RateLimit is set but RateBurst is zero.
	RateBurst int
}

// streamState tracks runtime state for a single stream.
type streamState struct {
	config  Config
	limiter *rate.Limiter
	pending int
}

// Limiter controls per-stream admission rate and pending depth.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	streams map[string]*streamState
}

// New creates a Limiter with the given stream configurations.
// Streams not listed here have no limits.
func New(configs ...Config) *Limiter {
	l := &Limiter{
		streams: make(map[string]*streamState, len(configs)),
	}
	for _, cfg := range configs {
		l.streams[cfg.Stream] = newStreamState(cfg)
	}
	return l
}

func newStreamState(cfg Config) *streamState {
	ss := &streamState{config: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		ss.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return ss
}

// Admit checks rate and pending-depth limits for the given stream. If
// the submission may proceed it increments the pending counter and
// returns true. The caller MUST call Done once the job finishes (or is
// removed from the queue without running).
func (l *Limiter) Admit(stream string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ss := l.streams[stream]
	if ss == nil {
		return true
	}
	if ss.limiter != nil && !ss.limiter.Allow() {
		return false
	}
	if ss.config.MaxPending > 0 && ss.pending >= ss.config.MaxPending {
		return false
	}
	ss.pending++
	return true
}

// Done decrements the pending count for the stream.
func (l *Limiter) Done(stream string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ss := l.streams[stream]; ss != nil && ss.pending > 0 {
		ss.pending--
	}
}

// SetConfig dynamically updates (or creates) a stream configuration.
func (l *Limiter) SetConfig(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing := l.streams[cfg.Stream]
	ss := newStreamState(cfg)

	// Preserve current pending count if reconfiguring.
	if existing != nil {
		ss.pending = existing.pending
	}
	l.streams[cfg.Stream] = ss
}

// Pending returns the current number of admitted-but-unfinished jobs
// for a stream.
func (l *Limiter) Pending(stream string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ss := l.streams[stream]; ss != nil {
		return ss.pending
	}
	return 0
}
