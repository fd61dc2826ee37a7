package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("runs handler with a context that outlives the caller", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		async.Dispatch(ctx, func(ctx context.Context) error {
			done <- ctx.Err()
			return nil
		})
		cancel()

		select {
		case err := <-done:
			gt.Value(t, err).Nil()
		case <-time.After(time.Second):
			t.Fatal("handler was not called")
		}
	})

	t.Run("survives handler errors and panics", func(t *testing.T) {
		done := make(chan struct{}, 2)

		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			return errors.New("failed")
		})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			panic("boom")
		})

		for i := 0; i < 2; i++ {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("handler was not called")
			}
		}
	})
}
