package futurepkg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAwait(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name      string
		fn        func(ctx context.Context) (int, error)
		wantValue int
		wantErr   error
	}{
		{
			name:      "Value",
			fn:        func(context.Context) (int, error) { return 42, nil },
			wantValue: 42,
		},
		{
			name:    "Error",
			fn:      func(context.Context) (int, error) { return 0, errBoom },
			wantErr: errBoom,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := Go(context.Background(), tc.fn)

			got, err := f.Await(context.Background())
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.wantValue, got)
			require.True(t, f.Ready())
		})
	}
}

func TestPanicRecovered(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (string, error) {
		panic("listener exploded")
	})

	_, err := f.Await(context.Background())
	require.ErrorContains(t, err, "listener exploded")
}

func TestAwaitCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	f := Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, f.Ready())
}

func TestDone(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) { return 7, nil })

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future not resolved")
	}

	c := Completed("ready", nil)
	require.True(t, c.Ready())

	got, err := c.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ready", got)
}
