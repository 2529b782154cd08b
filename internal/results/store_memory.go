package results

import (
	"context"
	"sync"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	"github.com/jonboulle/clockwork"
)

type memoryEntry struct {
	analysis  domain.Analysis
	expiresAt time.Time
}

// MemoryStore keeps the latest result per query in process memory.
type MemoryStore struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore(clock clockwork.Clock, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(_ context.Context, analysis domain.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[NormalizeQuery(analysis.Query)] = memoryEntry{
		analysis:  analysis,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) GetLatest(_ context.Context, query string) (domain.Analysis, error) {
	key := NormalizeQuery(query)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return domain.Analysis{}, domain.ErrResultNotFound
	}
	if !s.clock.Now().Before(entry.expiresAt) {
		// Expired entries are removed lazily on read.
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return domain.Analysis{}, domain.ErrResultNotFound
	}
	return entry.analysis, nil
}
