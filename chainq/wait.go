package chainq

import "time"

// Dequeue removes and returns the oldest value, blocking until one is
// available. It returns false only when the wait is cancelled by
// CancelWait or the chain is destroyed.
func (q *Chain[T]) Dequeue() (T, bool) {
	return q.dequeueWait(nil)
}

// DequeueTimeout is Dequeue bounded by d. It returns false when the
// deadline passes with the chain still empty, when the wait is
// cancelled, or when the chain is destroyed.
func (q *Chain[T]) DequeueTimeout(d time.Duration) (T, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	return q.dequeueWait(timer.C)
}

func (q *Chain[T]) dequeueWait(deadline <-chan time.Time) (T, bool) {
	var zero T
	for {
		if v, ok := q.TryDequeue(); ok {
			q.passWake()
			return v, true
		}
		if q.destroyed.Load() {
			return zero, false
		}

		gen := q.gen.Load()
		w := q.wakeCh()

		// An enqueue may have raced the emptiness check above; look
		// again right before actually sleeping.
		if v, ok := q.TryDequeue(); ok {
			q.passWake()
			return v, true
		}
		if q.gen.Load() != gen {
			return zero, false
		}

		select {
		case <-w:
			// Signalled, cancelled, or destroyed; the next loop
			// iteration sorts out which.
		case <-deadline:
			return zero, false
		}
		if q.gen.Load() != gen {
			return zero, false
		}
	}
}

// CancelWait kicks every currently blocked waiter out of its wait so
// it returns false. The chain stays usable: enqueues keep flowing and
// future waits block normally. Each call only cancels waits that were
// already in progress; a generation counter ties the wakeup to the
// cancellation that caused it.
func (q *Chain[T]) CancelWait() {
	q.gen.Add(1)
	q.wakeMu.Lock()
	if !q.closed {
		old := q.wake
		q.wake = make(chan struct{}, 1)
		close(old)
	}
	q.wakeMu.Unlock()
}

// Destroy permanently tears the chain down: all blocked waiters wake
// and return false, the node chain is released, and later enqueues are
// dropped. Destroy is idempotent and never panics.
func (q *Chain[T]) Destroy() {
	if !q.destroyed.CompareAndSwap(false, true) {
		return
	}
	q.gen.Add(1)
	q.wakeMu.Lock()
	if !q.closed {
		close(q.wake)
		q.closed = true
	}
	q.wakeMu.Unlock()
	q.Clear()
}

// signal wakes at most one blocked waiter. The single-slot channel
// coalesces bursts; a woken consumer passes the wake along if values
// remain (see passWake), so no waiter is stranded.
func (q *Chain[T]) signal() {
	q.wakeMu.Lock()
	if !q.closed {
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}
	q.wakeMu.Unlock()
}

// passWake re-signals after a successful blocking dequeue if the chain
// still holds values, so a coalesced signal reaches the next waiter.
func (q *Chain[T]) passWake() {
	if !q.IsEmpty() {
		q.signal()
	}
}

func (q *Chain[T]) wakeCh() <-chan struct{} {
	q.wakeMu.Lock()
	w := q.wake
	q.wakeMu.Unlock()
	return w
}
