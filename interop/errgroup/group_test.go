package errgroup

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xerrgroup "golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-coscope/poll"
)

func TestWaitEmptyGroup(t *testing.T) {
	t.Parallel()
	var g Group
	require.NoError(t, g.Wait())
}

func TestWaitAllSucceed(t *testing.T) {
	t.Parallel()
	ran := 0
	var g Group
	for i := 0; i < 3; i++ {
		g.Go(poll.Func[error](func(*poll.Context) (error, bool) {
			ran++
			return nil, true
		}))
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 3, ran)
}

func TestWaitReturnsFirstError(t *testing.T) {
	t.Parallel()
	errBoom := errors.New("boom")
	var g Group
	g.Go(poll.Ready[error](nil))
	g.Go(poll.Ready(errBoom))
	g.Go(poll.Ready(errors.New("later")))
	assert.ErrorIs(t, g.Wait(), errBoom)
}

func TestErrorDiscardsRemaining(t *testing.T) {
	t.Parallel()
	var g Group
	g.Go(poll.Ready(errors.New("first")))

	ran := false
	// suspends once, so its second step can never run after the error
	step := 0
	g.Go(poll.Func[error](func(cx *poll.Context) (error, bool) {
		step++
		if step == 1 {
			cx.Wake()
			return nil, false
		}
		ran = true
		return nil, true
	}))

	require.Error(t, g.Wait())
	assert.False(t, ran, "sibling resumed after group error")
}

func TestWaitIdempotent(t *testing.T) {
	t.Parallel()
	errBoom := errors.New("boom")
	var g Group
	g.Go(poll.Ready(errBoom))
	require.ErrorIs(t, g.Wait(), errBoom)
	require.ErrorIs(t, g.Wait(), errBoom)
}

func TestGoAfterWaitPanics(t *testing.T) {
	t.Parallel()
	var g Group
	require.NoError(t, g.Wait())
	assert.PanicsWithValue(t, "errgroup: Go after Wait", func() {
		g.Go(poll.Ready[error](nil))
	})
}

// The adapter mirrors x/sync errgroup semantics for the cases both can
// express: nil on success, the failing task's error otherwise.
func TestParityWithXSyncErrgroup(t *testing.T) {
	t.Parallel()
	errBoom := errors.New("boom")

	cases := []struct {
		name string
		errs []error
	}{
		{"all succeed", []error{nil, nil, nil}},
		{"one fails", []error{nil, errBoom, nil}},
		{"single task fails", []error{errBoom}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var g Group
			for _, err := range tc.errs {
				err := err
				g.Go(poll.Ready(err))
			}
			got := g.Wait()

			var ref xerrgroup.Group
			for _, err := range tc.errs {
				err := err
				ref.Go(func() error {
					time.Sleep(time.Millisecond) // keep completion order stable
					return err
				})
			}
			want := ref.Wait()

			assert.Equal(t, want, got)
		})
	}
}
