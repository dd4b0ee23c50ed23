// Package fanout runs queued actions on a fixed set of worker
// goroutines while preserving enqueue order at the dispatch point.
//
// A Chain is a shared FIFO of func() values drained by N persistent
// workers. Actions are picked up in enqueue order; with more than one
// worker, completion order is of course not guaranteed. A panicking
// action is recovered and logged, and its worker keeps draining.
//
//	c := fanout.New(4)
//	c.Enqueue(func() { sendNotification(user) })
//	defer c.Destroy()
package fanout
