package scope

// Observer receives lifecycle notifications from a driver. Hooks run
// inline inside the advance cycle and must not call back into the
// scope they observe.
type Observer interface {
	ScopeCreated()
	ScopeCancelled()
	// ScopeCompleted reports how many advance cycles the driver ran
	// before producing its result.
	ScopeCompleted(advances int)
	JobSpawned(id uint64)
	// JobFinished reports how many steps the job took to reach its
	// value.
	JobFinished(id uint64, steps int)
	JobDiscarded(id uint64)
}

type Option func(*Options)

type Options struct {
	Observer Observer
}

func defaultOptions() Options { return Options{} }

// WithObserver attaches obs to the scope being created.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

type nopObserver struct{}

func (nopObserver) ScopeCreated()           {}
func (nopObserver) ScopeCancelled()         {}
func (nopObserver) ScopeCompleted(int)      {}
func (nopObserver) JobSpawned(uint64)       {}
func (nopObserver) JobFinished(uint64, int) {}
func (nopObserver) JobDiscarded(uint64)     {}
