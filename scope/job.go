package scope

import "github.com/NetPo4ki/go-coscope/poll"

// jobState tracks a record through Spawned → Running → Done|Discarded.
// Both Done and Discarded are terminal.
type jobState uint8

const (
	jobSpawned jobState = iota
	jobRunning
	jobDone
	jobDiscarded
)

// jobRecord is the driver-owned state of one spawned job. Only the
// driver mutates it, with two exceptions: the ready flag is set by
// wakers (which may fire from other goroutines, e.g. timers) under the
// scope mutex, and the waiter is registered by Job.Poll, which runs on
// the driver's flow of control.
type jobRecord struct {
	id uint64

	// step advances the underlying computation by one unit and reports
	// whether it produced its final value. Cleared once the record is
	// terminal so that captured data is released.
	step func(*poll.Context) bool

	// cx is the record's polling context; its waker marks the record
	// ready and forwards the wake to the external poller.
	cx *poll.Context

	state jobState
	steps int

	// ready means the record's last suspension has been notified and
	// the next advance cycle should step it. Guarded by the scope
	// mutex.
	ready bool

	// waiter wakes whichever computation is awaiting this job's
	// handle. Registration does not drive execution; it only routes
	// the completion notification.
	waiter poll.Waker
}

// Job is the caller-visible handle to a spawned job's eventual value.
// It implements poll.Future[T] and must only be polled from within the
// owning scope's advance cycle, i.e. from the body or another job of
// the same scope.
//
// The value can be taken exactly once; polling again after it was
// delivered panics. A Job whose scope was cancelled never resolves:
// the await point is abandoned together with the body that held it.
// Dropping a Job without awaiting it neither cancels nor removes the
// underlying job.
type Job[T any] struct {
	rec   *jobRecord
	val   T
	taken bool
}

// ID returns the job's insertion-order identifier. Identifiers are
// unique and increase monotonically within a scope; they carry no
// scheduling guarantee.
func (j *Job[T]) ID() uint64 { return j.rec.id }

// Poll reports the job's value once the underlying record reaches its
// final state.
func (j *Job[T]) Poll(cx *poll.Context) (T, bool) {
	var zero T
	switch j.rec.state {
	case jobDone:
		if j.taken {
			panic("scope: job result taken twice")
		}
		j.taken = true
		v := j.val
		j.val = zero
		return v, true
	case jobDiscarded:
		// The scope was cancelled; whatever is awaiting this handle is
		// itself about to be discarded, so there is nothing to wake.
		return zero, false
	default:
		j.rec.waiter = cx.Waker()
		return zero, false
	}
}
