// Package chainq provides an unbounded linked-chain FIFO queue family
// for cross-goroutine work handoff.
//
// The package offers one generic type, Chain, whose behaviour varies
// along two orthogonal construction axes:
//
//   - Counted(): track an advisory item count (Count reports -1 without it)
//   - SingleReader(): elide the head lock for the one-consumer case
//
// # Quick Start
//
//	q := chainq.New[*job.Job](chainq.Counted())
//	q.Enqueue(j)
//
//	if v, ok := q.TryDequeue(); ok {
//	    run(v)
//	}
//
// Blocking consumers use Dequeue or DequeueTimeout:
//
//	for {
//	    v, ok := q.Dequeue()
//	    if !ok {
//	        return // cancelled or destroyed
//	    }
//	    run(v)
//	}
//
// # Design
//
// The chain always ends in an empty sentinel node. Enqueue writes the
// payload into the current sentinel, links a fresh sentinel after it,
// and advances the tail, all under the tail lock; it never needs an
// emptiness check. Dequeue's only emptiness check is whether the head
// node has a successor. Because head and tail are guarded by
// independent locks, producers and consumers do not contend on the
// common path.
//
// Payload publication is safe: the link to a node is stored with an
// atomic pointer after its value is written, so a consumer that
// observes the link also observes the value.
//
// # Thread Safety
//
// Enqueue is safe for any number of concurrent producers. TryDequeue,
// Dequeue, and DequeueTimeout are safe for any number of concurrent
// consumers unless the chain was built with SingleReader, in which
// case exactly one goroutine may consume. That contract is the
// caller's to uphold; violating it is a data race.
package chainq
