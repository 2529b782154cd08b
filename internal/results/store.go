// Package results stores the latest aggregate per query.
//
// Entries are ephemeral and TTL-bounded: a newer run of the same query
// replaces the previous one, and expiry removes the rest. The in-memory
// implementation serves single-instance mode; the Redis implementation
// shares results across instances.
package results

import (
	"context"
	"strings"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
)

// Store abstracts result storage.
type Store interface {
	// Save records a run as the latest result for its query.
	Save(ctx context.Context, analysis domain.Analysis) error
	// GetLatest returns the freshest non-expired result for a query,
	// or domain.ErrResultNotFound.
	GetLatest(ctx context.Context, query string) (domain.Analysis, error)
}

// NormalizeQuery canonicalizes a query for use as a store key, so that
// "Bitcoin " and "bitcoin" share one cache slot.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
