// Package limit provides per-stream admission control for job
// submission.
//
// Streams are logical groups of related jobs, keyed by a job's
// CommonID. A [Limiter] enforces a token-bucket rate limit
// (golang.org/x/time/rate) and a pending-count ceiling per stream at
// submission time:
//
//	l := limit.New(
//	    limit.Config{Stream: "texture-fetch", RateLimit: 50, RateBurst: 100},
//	    limit.Config{Stream: "bulk-export", MaxPending: 200},
//	)
//	if l.Admit(stream) {
//	    // submit the job; call l.Done(stream) after it runs
//	}
//
// Admission denial is backpressure, not an error: the engine reports
// it to the caller as a rejected submission. Streams without a
// [Config] have no limits.
package limit
