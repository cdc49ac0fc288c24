package scope

import (
	"sync"

	"github.com/NetPo4ki/go-coscope/poll"
)

type scopePhase uint8

const (
	phaseOpen scopePhase = iota
	phaseCompleted
)

// Scope is the capability handed to a scope's body (and, transitively,
// to its jobs). Its only operations are spawning jobs and requesting
// cancellation; all execution flows through the owning Driver.
//
// A Scope must not escape the function that received it: the value is
// only meaningful while its driver is advanced, and using it after the
// driver reported a result is a usage defect.
type Scope[C any] struct {
	mu    sync.Mutex
	table *jobTable
	obs   Observer
	phase scopePhase

	// cancel is the write-once cancellation payload. Once non-nil it
	// is never cleared; every advancement boundary observes it.
	cancel *C

	// root is the external poller's waker from the latest advance,
	// used to request a re-advance from outside a cycle (Cancel from a
	// timer, job wakes). Cleared on completion.
	root poll.Waker
}

// Spawn inserts a new job running f into s and returns its handle
// immediately; f is first advanced on the driver's next job sweep,
// never synchronously. Spawning is valid from the scope's body or from
// any job of the same scope, including while a sweep is in progress.
//
// If cancellation has already been requested the job is admitted
// directly as discarded and will never run. Spawning against a scope
// whose driver has reported a result panics.
//
// Spawn is a free function because Go methods cannot introduce the
// job's value type.
func Spawn[T, C any](s *Scope[C], f poll.Future[T]) *Job[T] {
	if f == nil {
		panic("scope: Spawn with nil future")
	}
	s.mu.Lock()
	if s.phase != phaseOpen {
		s.mu.Unlock()
		panic("scope: Spawn on a completed scope")
	}
	rec := &jobRecord{ready: true}
	s.table.assignID(rec)
	j := &Job[T]{rec: rec}

	if s.cancel != nil {
		rec.state = jobDiscarded
		s.mu.Unlock()
		s.obs.JobSpawned(rec.id)
		s.obs.JobDiscarded(rec.id)
		return j
	}

	rec.step = func(cx *poll.Context) bool {
		v, ready := f.Poll(cx)
		if ready {
			j.val = v
		}
		return ready
	}
	rec.cx = poll.NewContext(s.jobWaker(rec))
	s.table.stage(rec)
	s.mu.Unlock()
	s.obs.JobSpawned(rec.id)
	return j
}

// Cancel requests cooperative cancellation of the whole scope with the
// given payload. The first call wins; later calls are no-ops and the
// original payload is kept. Cancellation takes effect at the next
// advancement boundary — a sub-computation that is mid-step runs until
// it suspends or finishes that step.
func (s *Scope[C]) Cancel(payload C) {
	s.mu.Lock()
	if s.cancel == nil {
		p := payload
		s.cancel = &p
	}
	w := s.root
	s.mu.Unlock()
	// Make sure the driver is re-advanced so the flag is observed even
	// if nothing else is ready.
	if w != nil {
		w()
	}
}

// jobWaker builds the waker for rec: mark the record ready and forward
// the wake to the external poller.
func (s *Scope[C]) jobWaker(rec *jobRecord) poll.Waker {
	return func() {
		s.mu.Lock()
		rec.ready = true
		w := s.root
		s.mu.Unlock()
		if w != nil {
			w()
		}
	}
}

// cancelled returns the cancellation payload, if set.
func (s *Scope[C]) cancelled() (C, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		var zero C
		return zero, false
	}
	return *s.cancel, true
}
