package poll

import (
	"sync"
	"time"
)

// After returns a Future that completes with the fire time once d has
// elapsed, counted from the first poll. It is backed by a runtime
// timer, not a goroutine, so a forgotten timer future holds no
// resources beyond the timer itself.
//
// Timeouts are built by racing an After job against other work; the
// timer carries no cancellation semantics of its own.
func After(d time.Duration) Future[time.Time] {
	t := &timer{d: d}
	return t
}

type timer struct {
	mu    sync.Mutex
	d     time.Duration
	armed bool
	fired bool
	at    time.Time
	waker Waker
}

func (t *timer) Poll(cx *Context) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		return t.at, true
	}
	t.waker = cx.Waker()
	if !t.armed {
		t.armed = true
		time.AfterFunc(t.d, t.fire)
	}
	return time.Time{}, false
}

func (t *timer) fire() {
	t.mu.Lock()
	t.fired = true
	t.at = time.Now()
	w := t.waker
	t.mu.Unlock()
	if w != nil {
		w()
	}
}
