package poll

import (
	"sync"
	"testing"
	"time"
)

func TestReady(t *testing.T) {
	t.Parallel()
	v, ok := Ready(42).Poll(NewContext(nil))
	if !ok || v != 42 {
		t.Fatalf("Ready: got %d ok=%v", v, ok)
	}
}

func TestNeverStaysPending(t *testing.T) {
	t.Parallel()
	f := Never[int]()
	cx := NewContext(nil)
	for i := 0; i < 3; i++ {
		if _, ok := f.Poll(cx); ok {
			t.Fatal("Never completed")
		}
	}
}

func TestMap(t *testing.T) {
	t.Parallel()
	f := Map(Ready(21), func(v int) int { return 2 * v })
	v, ok := f.Poll(NewContext(nil))
	if !ok || v != 42 {
		t.Fatalf("Map: got %d ok=%v", v, ok)
	}
}

func TestThenChainsAcrossSuspension(t *testing.T) {
	t.Parallel()
	steps := 0
	first := Func[int](func(*Context) (int, bool) {
		steps++
		if steps < 3 {
			return 0, false
		}
		return 10, true
	})
	f := Then(first, func(v int) Future[string] {
		if v != 10 {
			t.Fatalf("Then received %d", v)
		}
		return Ready("done")
	})
	cx := NewContext(nil)
	for i := 0; i < 2; i++ {
		if _, ok := f.Poll(cx); ok {
			t.Fatal("completed early")
		}
	}
	v, ok := f.Poll(cx)
	if !ok || v != "done" {
		t.Fatalf("Then: got %q ok=%v", v, ok)
	}
	if steps != 3 {
		t.Fatalf("first future polled %d times, want 3", steps)
	}
}

func TestBlockParksUntilWoken(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var w Waker
	released := false

	go func() {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		released = true
		wake := w
		mu.Unlock()
		if wake != nil {
			wake()
		}
	}()

	v := Block(Func[int](func(cx *Context) (int, bool) {
		mu.Lock()
		defer mu.Unlock()
		if released {
			return 33, true
		}
		w = cx.Waker()
		return 0, false
	}))
	if v != 33 {
		t.Fatalf("Block: got %d", v)
	}
}

func TestAfterCompletes(t *testing.T) {
	t.Parallel()
	start := time.Now()
	at := Block(After(10 * time.Millisecond))
	if at.Before(start.Add(10 * time.Millisecond)) {
		t.Fatalf("timer fired early: started %v, fired %v", start, at)
	}
}

func TestContextWakeIsNeverNil(t *testing.T) {
	t.Parallel()
	cx := NewContext(nil)
	cx.Wake() // must not panic
	if cx.Waker() == nil {
		t.Fatal("nil waker from Context")
	}
}
