// Package errgroup provides an adapter that mimics
// golang.org/x/sync/errgroup semantics on top of a cooperative scope.
// It lets future-shaped work reuse the familiar Go/Wait surface during
// incremental migration.
package errgroup

import (
	"github.com/NetPo4ki/go-coscope/poll"
	"github.com/NetPo4ki/go-coscope/scope"
)

// Group collects fallible futures and runs them under a single scope.
// The zero value is ready to use. Unlike x/sync's errgroup, the work
// does not start until Wait is called, and the first error discards
// the remaining futures at their next suspension point rather than
// merely cancelling a context.
type Group struct {
	futures []poll.Future[error]
	waited  bool
	err     error
}

// Go adds f to the group. It must be called before Wait; calling it
// afterwards panics.
func (g *Group) Go(f poll.Future[error]) {
	if f == nil {
		return
	}
	if g.waited {
		panic("errgroup: Go after Wait")
	}
	g.futures = append(g.futures, f)
}

// Wait drives every collected future to completion on the calling
// goroutine and returns the first non-nil error, or nil if all
// succeeded. Wait is idempotent; subsequent calls return the same
// result.
func (g *Group) Wait() error {
	if g.waited {
		return g.err
	}
	g.waited = true
	if len(g.futures) == 0 {
		return nil
	}

	fs := g.futures
	d := scope.New(func(s *scope.Scope[error]) poll.Future[struct{}] {
		return poll.Func[struct{}](func(*poll.Context) (struct{}, bool) {
			for _, f := range fs {
				scope.Spawn(s, poll.Then(f, func(err error) poll.Future[struct{}] {
					if err != nil {
						s.Cancel(err)
						return poll.Never[struct{}]()
					}
					return poll.Ready(struct{}{})
				}))
			}
			return struct{}{}, true
		})
	})

	res := poll.Block[scope.Result[struct{}, error]](d)
	if err, ok := res.Cancelled(); ok {
		g.err = err
	}
	return g.err
}
