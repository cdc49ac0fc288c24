// Package poll defines the suspension vocabulary for cooperative,
// single-flow-of-control concurrency: a Future that is advanced one
// bounded step at a time, a Waker through which a suspended computation
// announces that it can make progress again, and a Context that carries
// the waker during a poll.
//
// Nothing in this package runs on a background goroutine. A Future only
// makes progress while someone calls its Poll method; ceasing to poll
// freezes the computation permanently, which is always safe.
//
// Block is the minimal conforming driver: it polls a single Future on
// the calling goroutine and parks between polls until woken. Any
// scheduler that re-polls on wake and stops polling after the Future
// reports ready can drive the same computations.
package poll
