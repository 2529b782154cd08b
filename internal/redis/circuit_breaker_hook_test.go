package redis

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerHook_NormalOperation(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// Circuit starts closed
	assert.Equal(t, circuitbreaker.ClosedState, hook.State())

	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return nil
	})
	for i := 0; i < 10; i++ {
		err := processHook(ctx, goredis.NewStringCmd(ctx, "get", "key"))
		assert.NoError(t, err)
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.State())
}

func TestCircuitBreakerHook_TransientFailuresStayClosed(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// 2 failures, below the 5-execution threshold
	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return errors.New("connection refused")
	})
	for i := 0; i < 2; i++ {
		err := processHook(ctx, goredis.NewStringCmd(ctx, "get", "key"))
		require.Error(t, err)
		assert.False(t, errors.Is(err, circuitbreaker.ErrOpen))
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.State())
}

func TestCircuitBreakerHook_OpensAfterSustainedFailures(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// 5 consecutive failures meet the 60%/5-execution threshold
	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return errors.New("connection timeout")
	})
	for i := 0; i < 5; i++ {
		err := processHook(ctx, goredis.NewStringCmd(ctx, "get", "key"))
		assert.Error(t, err)
	}

	assert.Equal(t, circuitbreaker.OpenState, hook.State())
}

func TestCircuitBreakerHook_FailsFastWhenOpen(t *testing.T) {
	hook := tripBreaker(t)
	ctx := context.Background()

	called := false
	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		called = true
		return nil
	})
	err := processHook(ctx, goredis.NewStringCmd(ctx, "set", "key", "value"))

	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.False(t, called, "next hook must not run when the circuit is open")
}

func TestCircuitBreakerHook_NilIsAMissNotAFailure(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// A steady stream of cache misses must never trip the breaker.
	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return goredis.Nil
	})
	for i := 0; i < 10; i++ {
		err := processHook(ctx, goredis.NewStringCmd(ctx, "get", "missing-key"))
		assert.ErrorIs(t, err, goredis.Nil)
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.State())
}

func TestCircuitBreakerHook_RecoveryClosesAfterSuccess(t *testing.T) {
	// Short open delay so the test can wait it out.
	hook := &CircuitBreakerHook{
		cb: circuitbreaker.NewBuilder[any]().
			WithFailureRateThreshold(0.6, 3, 10*time.Second).
			WithDelay(50 * time.Millisecond).
			WithSuccessThreshold(1).
			Build(),
	}
	ctx := context.Background()

	failing := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return errors.New("redis down")
	})
	for i := 0; i < 3; i++ {
		_ = failing(ctx, goredis.NewStringCmd(ctx, "get", "key"))
	}
	require.Equal(t, circuitbreaker.OpenState, hook.State())

	// Wait out the open delay, then one success closes the circuit.
	time.Sleep(100 * time.Millisecond)

	succeeding := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return nil
	})
	err := succeeding(ctx, goredis.NewStringCmd(ctx, "get", "key"))
	require.NoError(t, err)

	assert.Equal(t, circuitbreaker.ClosedState, hook.State())
}

func TestCircuitBreakerHook_PipelineFailsFastWhenOpen(t *testing.T) {
	hook := tripBreaker(t)
	ctx := context.Background()

	pipelineHook := hook.ProcessPipelineHook(func(ctx context.Context, cmds []goredis.Cmder) error {
		t.Fatal("pipeline must not run when the circuit is open")
		return nil
	})
	err := pipelineHook(ctx, []goredis.Cmder{
		goredis.NewStringCmd(ctx, "get", "key1"),
		goredis.NewStringCmd(ctx, "get", "key2"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
}

func TestCircuitBreakerHook_DialFailsFastWhenOpen(t *testing.T) {
	hook := tripBreaker(t)
	ctx := context.Background()

	dialHook := hook.DialHook(func(ctx context.Context, network, addr string) (net.Conn, error) {
		t.Fatal("dial must not run when the circuit is open")
		return nil, nil
	})
	_, err := dialHook(ctx, "tcp", "localhost:6379")

	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
}

// tripBreaker returns a hook whose circuit has been opened by sustained
// command failures.
func tripBreaker(t *testing.T) *CircuitBreakerHook {
	t.Helper()
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return errors.New("redis down")
	})
	for i := 0; i < 5; i++ {
		_ = processHook(ctx, goredis.NewStringCmd(ctx, "get", "key"))
	}

	require.Equal(t, circuitbreaker.OpenState, hook.State())
	return hook
}
