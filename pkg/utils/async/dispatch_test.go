package async_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/utils/async"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("handler did not finish")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("runs handler", func(t *testing.T) {
		var called atomic.Bool
		done := async.Dispatch(context.Background(), func(ctx context.Context) error {
			called.Store(true)
			return nil
		})
		waitDone(t, done)
		gt.Bool(t, called.Load()).True()
	})

	t.Run("handler context outlives parent cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var handlerErr atomic.Value
		done := async.Dispatch(ctx, func(ctx context.Context) error {
			handlerErr.Store(ctx.Err() == nil)
			return nil
		})
		waitDone(t, done)
		gt.Value(t, handlerErr.Load()).Equal(true)
	})

	t.Run("error and panic do not escape", func(t *testing.T) {
		waitDone(t, async.Dispatch(context.Background(), func(ctx context.Context) error {
			return goerr.New("failed")
		}))
		waitDone(t, async.Dispatch(context.Background(), func(ctx context.Context) error {
			panic("boom")
		}))
	})
}
