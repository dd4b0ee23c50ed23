package chainq

import (
	"sync"
	"sync/atomic"
)

// node is a chain cell. The queue exclusively owns its nodes; callers
// only ever see payload values extracted by dequeue.
//
// next is an atomic pointer because it doubles as the publication
// barrier: a producer stores it only after writing value, so a
// consumer that loads a non-nil next may freely read the value of the
// node that carries it.
type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// Option configures a Chain at construction time.
type Option func(*options)

type options struct {
	counted      bool
	singleReader bool
}

// Counted enables the advisory item counter. Count returns -1 on
// chains built without it.
func Counted() Option {
	return func(o *options) { o.counted = true }
}

// SingleReader declares that exactly one goroutine will consume from
// the chain, which lets dequeue skip the head lock. This is a caller
// contract, not an enforced one: consuming from two goroutines on a
// SingleReader chain is a data race.
func SingleReader() Option {
	return func(o *options) { o.singleReader = true }
}

// Chain is an unbounded FIFO queue backed by a singly-linked chain of
// nodes ending in an empty sentinel. The zero value is not usable;
// construct with New.
type Chain[T any] struct {
	// head is the node holding the oldest value (or the sentinel when
	// empty). Advanced only by consumers, under headMu unless the
	// chain was built SingleReader. Stored atomically so IsEmpty can
	// observe it without a lock.
	head   atomic.Pointer[node[T]]
	headMu sync.Mutex

	// tail is the empty sentinel awaiting the next enqueue. Guarded by
	// tailMu.
	tail   *node[T]
	tailMu sync.Mutex

	count atomic.Int64

	// wake is the signal channel blocking dequeuers sleep on. Guarded
	// by wakeMu together with closed, which latches once Destroy has
	// closed the channel for good.
	wake   chan struct{}
	wakeMu sync.Mutex
	closed bool

	// gen is bumped by CancelWait and Destroy; a sleeping waiter that
	// observes a generation change gives up and returns false.
	gen       atomic.Uint64
	destroyed atomic.Bool

	counted      bool
	singleReader bool
}

// New creates an empty Chain.
func New[T any](opts ...Option) *Chain[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &node[T]{}
	q := &Chain[T]{
		tail:         s,
		wake:         make(chan struct{}, 1),
		counted:      o.counted,
		singleReader: o.singleReader,
	}
	q.head.Store(s)
	return q
}

// Enqueue appends v to the chain. It is O(1), never blocks, and is
// safe for any number of concurrent producers. Values enqueued after
// Destroy are dropped.
func (q *Chain[T]) Enqueue(v T) {
	if q.destroyed.Load() {
		return
	}
	n := &node[T]{}
	q.tailMu.Lock()
	t := q.tail
	t.value = v
	q.tail = n
	t.next.Store(n) // publish: value write above happens-before this store
	q.tailMu.Unlock()
	if q.counted {
		q.count.Add(1)
	}
	q.signal()
}

// TryDequeue removes and returns the oldest value. It returns false
// immediately if the chain is empty.
func (q *Chain[T]) TryDequeue() (T, bool) {
	if q.singleReader {
		return q.pop()
	}
	q.headMu.Lock()
	v, ok := q.pop()
	q.headMu.Unlock()
	return v, ok
}

// pop advances the head past the oldest filled node. Callers hold
// headMu or are the sole reader.
func (q *Chain[T]) pop() (T, bool) {
	var zero T
	h := q.head.Load()
	n := h.next.Load()
	if n == nil {
		return zero, false
	}
	q.head.Store(n)
	v := h.value
	h.value = zero // drop the payload reference
	if q.counted {
		q.count.Add(-1)
	}
	return v, true
}

// IsEmpty reports whether the chain holds no values. The answer is
// advisory under concurrent mutation.
func (q *Chain[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}

// Count returns the advisory item count, or -1 if the chain was built
// without Counted. The value is eventually consistent relative to
// concurrent producers and consumers, not a linearizable snapshot.
func (q *Chain[T]) Count() int {
	if !q.counted {
		return -1
	}
	return int(q.count.Load())
}

// Clear atomically replaces the chain with a fresh empty sentinel and
// resets the count. On SingleReader chains Clear must be called from
// the reader goroutine.
func (q *Chain[T]) Clear() {
	q.tailMu.Lock()
	q.headMu.Lock()
	s := &node[T]{}
	q.head.Store(s)
	q.tail = s
	if q.counted {
		q.count.Store(0)
	}
	q.headMu.Unlock()
	q.tailMu.Unlock()
}

// RemoveIf removes every queued value for which match returns true and
// reports how many were removed. The whole scan happens under both
// locks, so it observes a consistent snapshot of the chain. On
// SingleReader chains RemoveIf must be called from the reader
// goroutine.
func (q *Chain[T]) RemoveIf(match func(T) bool) int {
	q.tailMu.Lock()
	q.headMu.Lock()
	defer q.tailMu.Unlock()
	defer q.headMu.Unlock()

	removed := 0
	s := &node[T]{}
	head, tail := s, s
	for n := q.head.Load(); n.next.Load() != nil; n = n.next.Load() {
		if match(n.value) {
			removed++
			continue
		}
		tail.value = n.value
		next := &node[T]{}
		tail.next.Store(next)
		tail = next
	}
	q.head.Store(head)
	q.tail = tail
	if q.counted {
		q.count.Add(int64(-removed))
	}
	return removed
}
