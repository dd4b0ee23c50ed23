package fanout_test

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xraph/conveyor/fanout"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// waitUntil polls cond every 10ms until it holds or the deadline passes.
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for " + msg)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// ---------------------------------------------------------------------------
// Execution
// ---------------------------------------------------------------------------

func TestChain_RunsEnqueuedActions(t *testing.T) {
	c := fanout.New(2)
	defer c.Destroy()

	var counter atomic.Int64
	for range 10 {
		c.Enqueue(func() { counter.Add(1) })
	}

	waitUntil(t, 5*time.Second, func() bool {
		return counter.Load() == 10
	}, "all actions to run")
}

func TestChain_SingleWorkerPreservesOrder(t *testing.T) {
	c := fanout.New(1)
	defer c.Destroy()

	const n = 100
	results := make(chan int, n)
	for i := range n {
		c.Enqueue(func() { results <- i })
	}

	for i := range n {
		select {
		case got := <-results:
			if got != i {
				t.Fatalf("action %d ran out of order (got %d)", i, got)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for action %d", i)
		}
	}
}

func TestChain_PanicDoesNotKillWorker(t *testing.T) {
	c := fanout.New(1, fanout.WithLogger(discardLogger()))
	defer c.Destroy()

	var counter atomic.Int64
	c.Enqueue(func() { panic("boom") })
	c.Enqueue(func() { counter.Add(1) })

	waitUntil(t, 5*time.Second, func() bool {
		return counter.Load() == 1
	}, "the action after the panicking one to run")
}

func TestChain_NilActionIgnored(t *testing.T) {
	c := fanout.New(1)
	defer c.Destroy()

	c.Enqueue(nil)

	var ran atomic.Bool
	c.Enqueue(func() { ran.Store(true) })
	waitUntil(t, 5*time.Second, func() bool { return ran.Load() }, "the real action to run")
}

// ---------------------------------------------------------------------------
// Teardown
// ---------------------------------------------------------------------------

func TestChain_DestroyJoinsWorkers(t *testing.T) {
	c := fanout.New(4)

	var inFlight atomic.Int64
	started := make(chan struct{}, 1)
	c.Enqueue(func() {
		started <- struct{}{}
		time.Sleep(50 * time.Millisecond)
		inFlight.Add(1)
	})

	<-started
	c.Destroy()

	// Destroy joined, so the action in flight finished first.
	if inFlight.Load() != 1 {
		t.Fatal("Destroy returned before the action in flight finished")
	}

	// Enqueues after Destroy are dropped.
	c.Enqueue(func() { t.Error("action enqueued after Destroy must not run") })
	time.Sleep(50 * time.Millisecond)

	// Idempotent.
	c.Destroy()
}

func TestChain_DetachedDestroyDoesNotBlock(t *testing.T) {
	c := fanout.New(1, fanout.WithDetachedWorkers())

	gate := make(chan struct{})
	started := make(chan struct{})
	c.Enqueue(func() {
		close(started)
		<-gate
	})
	<-started

	done := make(chan struct{})
	go func() {
		c.Destroy()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("detached Destroy blocked on the worker")
	}
	close(gate)
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestChain_ConcurrentProducers(t *testing.T) {
	const (
		producers   = 8
		perProducer = 1250
		total       = producers * perProducer
	)

	c := fanout.New(4)
	defer c.Destroy()

	var counter atomic.Int64
	var g errgroup.Group
	for range producers {
		g.Go(func() error {
			for range perProducer {
				c.Enqueue(func() { counter.Add(1) })
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	waitUntil(t, 10*time.Second, func() bool {
		return counter.Load() == total
	}, "every produced action to run exactly once")

	// Settle briefly to catch double execution.
	time.Sleep(50 * time.Millisecond)
	if got := counter.Load(); got != total {
		t.Fatalf("ran %d actions, want %d", got, total)
	}
}
