package scope

import "github.com/NetPo4ki/go-coscope/poll"

// Result is the outcome of a scope run: either the body's value or the
// cancellation payload. Exactly one variant is ever produced.
type Result[T, C any] struct {
	value     T
	payload   C
	cancelled bool
}

// Value returns the body's value; ok is false if the scope was
// cancelled.
func (r Result[T, C]) Value() (T, bool) { return r.value, !r.cancelled }

// Cancelled returns the cancellation payload; ok is false if the scope
// completed normally.
func (r Result[T, C]) Cancelled() (C, bool) { return r.payload, r.cancelled }

// Driver is a scope's state machine. It owns the body computation, the
// job table and the cancellation state, and implements
// poll.Future[Result[T, C]]: each Poll performs one bounded advance
// cycle.
//
// A Driver is driven by an external poller and holds no goroutine of
// its own; if the owner stops polling or discards the driver, every
// job is frozen where it last suspended and none of the data it
// borrowed is touched again. Polling after the driver has reported a
// result panics.
type Driver[T, C any] struct {
	scope *Scope[C]
	obs   Observer

	body      poll.Future[T]
	bodyCx    *poll.Context
	bodyReady bool // guarded by scope.mu; set by the body's waker
	bodyDone  bool
	bodyVal   T

	done     bool
	advances int
}

// New creates a scope and builds its driver. The factory receives the
// scope handle and returns the body computation; the body is first
// advanced on the driver's first Poll.
func New[T, C any](body func(*Scope[C]) poll.Future[T], opts ...Option) *Driver[T, C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	obs := o.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	s := &Scope[C]{table: newJobTable(), obs: obs}
	d := &Driver[T, C]{scope: s, obs: obs, bodyReady: true}
	d.body = body(s)
	if d.body == nil {
		panic("scope: nil body")
	}
	d.bodyCx = poll.NewContext(func() {
		s.mu.Lock()
		d.bodyReady = true
		w := s.root
		s.mu.Unlock()
		if w != nil {
			w()
		}
	})
	obs.ScopeCreated()
	return d
}

// Poll performs one advance cycle: observe cancellation, give the body
// one step if it is ready and unfinished, then sweep the job table,
// admitting and stepping nested spawns within the same cycle. It
// reports ready only when the body has produced a value and the table
// has drained, or when cancellation fired.
//
// A panic in the body or in any job is fatal to the scope: every
// record is discarded and the panic resumes out of Poll.
func (d *Driver[T, C]) Poll(cx *poll.Context) (Result[T, C], bool) {
	if d.done {
		panic("scope: Poll after completion")
	}
	s := d.scope
	s.mu.Lock()
	s.root = cx.Waker()
	s.mu.Unlock()
	d.advances++

	defer func() {
		if r := recover(); r != nil {
			d.abandon()
			panic(r)
		}
	}()

	if res, ok := d.finishCancelled(); ok {
		return res, true
	}

	// One body step per cycle.
	if !d.bodyDone && d.takeBodyReady() {
		v, ready := d.body.Poll(d.bodyCx)
		if ready {
			d.bodyVal = v
			d.bodyDone = true
			d.body = nil
		}
		if res, ok := d.finishCancelled(); ok {
			return res, true
		}
	}

	// Sweep ready jobs in insertion order, each at most once per
	// cycle. Jobs spawned during the sweep are admitted and swept in
	// the same cycle, so a fresh record's first step is never delayed
	// past the cycle that created it.
	stepped := make(map[uint64]bool)
	for {
		s.mu.Lock()
		s.table.admit()
		ids := s.table.ready(stepped)
		s.mu.Unlock()
		if len(ids) == 0 {
			break
		}
		for _, id := range ids {
			stepped[id] = true
			res, ok, fin := d.stepJob(id)
			if fin {
				return res, ok
			}
		}
	}

	s.mu.Lock()
	drained := s.table.empty()
	s.mu.Unlock()
	if d.bodyDone && drained {
		d.complete()
		d.obs.ScopeCompleted(d.advances)
		return Result[T, C]{value: d.bodyVal}, true
	}
	return Result[T, C]{}, false
}

// stepJob advances one record. fin reports that the cycle must end
// because cancellation was observed right after the step.
func (d *Driver[T, C]) stepJob(id uint64) (res Result[T, C], ok, fin bool) {
	s := d.scope
	s.mu.Lock()
	rec := s.table.records[id]
	if rec == nil {
		s.mu.Unlock()
		return res, false, false
	}
	rec.ready = false
	rec.state = jobRunning
	step, jcx := rec.step, rec.cx
	s.mu.Unlock()

	rec.steps++
	finished := step(jcx)

	if finished {
		s.mu.Lock()
		rec.state = jobDone
		rec.step = nil
		rec.cx = nil
		s.table.remove(id)
		w := rec.waiter
		s.mu.Unlock()
		d.obs.JobFinished(id, rec.steps)
		if w != nil {
			w()
		}
	}

	if r, cancelled := d.finishCancelled(); cancelled {
		return r, true, true
	}
	return res, false, false
}

// finishCancelled consumes a pending cancellation request: discard
// every record, mark the body discarded, and produce the cancelled
// result. This happens exactly once per scope.
func (d *Driver[T, C]) finishCancelled() (Result[T, C], bool) {
	payload, ok := d.scope.cancelled()
	if !ok {
		return Result[T, C]{}, false
	}
	d.abandon()
	d.obs.ScopeCancelled()
	d.obs.ScopeCompleted(d.advances)
	return Result[T, C]{payload: payload, cancelled: true}, true
}

// abandon marks the driver complete without a normal value, discarding
// every outstanding record. Used for cancellation and for faults.
func (d *Driver[T, C]) abandon() {
	if d.done {
		return
	}
	d.done = true
	d.body = nil
	s := d.scope
	s.mu.Lock()
	s.phase = phaseCompleted
	s.root = nil
	discarded := s.table.discardAll()
	s.mu.Unlock()
	for _, id := range discarded {
		d.obs.JobDiscarded(id)
	}
}

// complete marks a normal completion: body value produced, table
// drained.
func (d *Driver[T, C]) complete() {
	d.done = true
	s := d.scope
	s.mu.Lock()
	s.phase = phaseCompleted
	s.root = nil
	s.mu.Unlock()
}

func (d *Driver[T, C]) takeBodyReady() bool {
	s := d.scope
	s.mu.Lock()
	defer s.mu.Unlock()
	ready := d.bodyReady
	d.bodyReady = false
	return ready
}

// Infallible wraps d for scopes that never cancel: the returned future
// yields the body's value directly and panics if a cancellation
// payload is ever produced.
func (d *Driver[T, C]) Infallible() poll.Future[T] {
	return poll.Func[T](func(cx *poll.Context) (T, bool) {
		res, ready := d.Poll(cx)
		if !ready {
			var zero T
			return zero, false
		}
		if _, ok := res.Cancelled(); ok {
			panic("scope: infallible scope was cancelled")
		}
		v, _ := res.Value()
		return v, true
	})
}
