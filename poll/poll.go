package poll

// A Waker signals that a suspended computation may be able to make
// progress and should be polled again. Wakers must be safe to invoke
// from any goroutine and at any time; waking a computation that has
// already completed is a no-op.
type Waker func()

// Context carries the waker handed to a computation for the duration of
// one poll.
type Context struct {
	waker Waker
}

// NewContext returns a Context that invokes w when woken. A nil w
// yields a no-op waker, which is useful for drivers that poll in a
// busy loop.
func NewContext(w Waker) *Context {
	if w == nil {
		w = func() {}
	}
	return &Context{waker: w}
}

// Waker returns the context's waker. It is never nil.
func (cx *Context) Waker() Waker { return cx.waker }

// Wake invokes the context's waker.
func (cx *Context) Wake() { cx.waker() }

// A Future is a suspending computation that eventually produces a T.
//
// Poll advances the computation by one bounded step. If ready is false
// the computation has suspended and must have arranged for cx's waker
// to fire once progress is possible again; polling before that wake is
// permitted but may do no work. Polling after ready was reported is a
// usage defect.
type Future[T any] interface {
	Poll(cx *Context) (val T, ready bool)
}

// Func adapts a plain function to a Future.
type Func[T any] func(cx *Context) (T, bool)

// Poll calls f.
func (f Func[T]) Poll(cx *Context) (T, bool) { return f(cx) }

// Ready returns a Future that completes immediately with v.
func Ready[T any](v T) Future[T] {
	return Func[T](func(*Context) (T, bool) { return v, true })
}

// Never returns a Future that never completes. It registers no waker;
// whatever awaits it is abandoned together with its surroundings.
func Never[T any]() Future[T] {
	return Func[T](func(*Context) (T, bool) {
		var zero T
		return zero, false
	})
}

// Map returns a Future that completes with fn applied to f's value.
func Map[T, U any](f Future[T], fn func(T) U) Future[U] {
	return Func[U](func(cx *Context) (U, bool) {
		v, ready := f.Poll(cx)
		if !ready {
			var zero U
			return zero, false
		}
		return fn(v), true
	})
}

// Then returns a Future that waits for f, then continues with the
// Future produced by fn from f's value.
func Then[T, U any](f Future[T], fn func(T) Future[U]) Future[U] {
	var next Future[U]
	return Func[U](func(cx *Context) (U, bool) {
		if next == nil {
			v, ready := f.Poll(cx)
			if !ready {
				var zero U
				return zero, false
			}
			next = fn(v)
		}
		return next.Poll(cx)
	})
}
