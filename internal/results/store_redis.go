package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// RedisStore keeps the latest result per query in Redis with a
// server-side TTL, shared across instances.
type RedisStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *goredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func resultKey(query string) string {
	return "analysis:latest:" + NormalizeQuery(query)
}

func (s *RedisStore) Save(ctx context.Context, analysis domain.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if err := s.rdb.Set(ctx, resultKey(analysis.Query), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}
	return nil
}

func (s *RedisStore) GetLatest(ctx context.Context, query string) (domain.Analysis, error) {
	payload, err := s.rdb.Get(ctx, resultKey(query)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Analysis{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("failed to load analysis: %w", err)
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return domain.Analysis{}, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return analysis, nil
}
