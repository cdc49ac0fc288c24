package poll

// A Stream is a pull-based sequence of values for cooperative
// consumers.
//
// PollNext mirrors the Future contract: ready=false means the stream
// has suspended and registered the waker; ready=true with ok=false
// means the stream is exhausted. Streams are single-consumer.
type Stream[T any] interface {
	PollNext(cx *Context) (item T, ok bool, ready bool)
}

// StreamFunc adapts a plain function to a Stream.
type StreamFunc[T any] func(cx *Context) (T, bool, bool)

// PollNext calls f.
func (f StreamFunc[T]) PollNext(cx *Context) (T, bool, bool) { return f(cx) }

// FromSlice returns a Stream yielding the items in order. The slice is
// not copied; it must not be mutated while the stream is consumed.
func FromSlice[T any](items []T) Stream[T] {
	i := 0
	return StreamFunc[T](func(*Context) (T, bool, bool) {
		if i >= len(items) {
			var zero T
			return zero, false, true
		}
		v := items[i]
		i++
		return v, true, true
	})
}

// Filter returns a Stream yielding only the items for which keep
// reports true.
func Filter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	return StreamFunc[T](func(cx *Context) (T, bool, bool) {
		for {
			v, ok, ready := s.PollNext(cx)
			if !ready || !ok {
				return v, ok, ready
			}
			if keep(v) {
				return v, true, true
			}
		}
	})
}

// Fold returns a Future that consumes s, threading an accumulator
// through fn, and completes with the final accumulator once s is
// exhausted.
func Fold[T, R any](s Stream[T], acc R, fn func(R, T) R) Future[R] {
	return Func[R](func(cx *Context) (R, bool) {
		for {
			v, ok, ready := s.PollNext(cx)
			if !ready {
				return acc, false
			}
			if !ok {
				return acc, true
			}
			acc = fn(acc, v)
		}
	})
}

// ForEach returns a Future that consumes s, calling fn on every item.
func ForEach[T any](s Stream[T], fn func(T)) Future[struct{}] {
	return Fold(s, struct{}{}, func(z struct{}, v T) struct{} {
		fn(v)
		return z
	})
}

// Collect returns a Future that consumes s into a slice.
func Collect[T any](s Stream[T]) Future[[]T] {
	return Fold(s, []T(nil), func(acc []T, v T) []T {
		return append(acc, v)
	})
}
