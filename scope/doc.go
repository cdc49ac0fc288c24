// Package scope provides a lifetime-bound concurrency domain for
// cooperative, single-flow-of-control execution. A scope's body may
// spawn jobs that reference data owned by the caller's stack frame; the
// scope does not report completion until every spawned job has finished
// or been discarded, so no job can outlive that frame.
//
// New builds a Driver from a body factory. The Driver is itself a
// poll.Future whose eventual value is a Result: either the body's value
// or, if Scope.Cancel was called, the cancellation payload. An external
// poller (poll.Block, or any conforming scheduler) advances the driver;
// exactly one sub-computation runs at any instant, and nothing runs at
// all between advances. Discarding a driver mid-run therefore freezes
// the whole domain, which is always safe no matter what the jobs
// borrowed.
//
// Cancellation is cooperative and one-shot: it is observed at
// advancement boundaries, never mid-step, after which every outstanding
// job is discarded without running again.
package scope
