package poll

// Block drives f to completion on the calling goroutine and returns
// its value. Between polls the goroutine parks until f's waker fires,
// so a suspended f costs nothing while idle.
//
// Block deadlocks if f suspends without registering the waker; that is
// a defect in f, not in the driver.
func Block[T any](f Future[T]) T {
	wake := make(chan struct{}, 1)
	cx := NewContext(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	for {
		if v, ready := f.Poll(cx); ready {
			return v
		}
		<-wake
	}
}
