package redis

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// MetricsHook instruments every Redis round trip: dial failures feed the
// connection-error counter, commands and pipelines feed per-operation
// count and latency. A cache miss (redis.Nil) counts as a successful
// round trip, matching how the result store treats it.
type MetricsHook struct{}

var _ goredis.Hook = MetricsHook{}

func (MetricsHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			metrics.RedisConnectionErrors.Inc()
		}
		return conn, err
	}
}

func (MetricsHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		observeOp(cmd.Name(), time.Since(start), err)
		return err
	}
}

func (MetricsHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		observeOp("pipeline", time.Since(start), err)
		return err
	}
}

func observeOp(op string, elapsed time.Duration, err error) {
	metrics.RedisOpsTotal.WithLabelValues(op, opOutcome(err)).Inc()
	metrics.RedisOpDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// opOutcome classifies one operation result. redis.Nil is a miss, not a
// failure; the circuit breaker hook applies the same rule.
func opOutcome(err error) string {
	if err != nil && !errors.Is(err, goredis.Nil) {
		return "error"
	}
	return "success"
}
