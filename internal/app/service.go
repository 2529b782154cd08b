package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/analysis"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	apperrors "github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/errors"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/logging"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/metrics"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/results"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Fetcher returns recent posts matching a query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]domain.Post, error)
}

// Scorer returns the sentiment verdict for one text.
type Scorer interface {
	Score(ctx context.Context, text string) (domain.SentimentResult, error)
}

// Publisher pushes lifecycle events to dashboard clients.
type Publisher interface {
	Publish(event domain.Event)
}

// Service runs the analysis workflow. One Analyze call is one run of the
// state machine Idle -> Fetching -> Scoring -> Done/Failed; runs are
// independent and a new submission never cancels an in-flight one.
type Service struct {
	fetcher   Fetcher
	scorer    Scorer
	store     results.Store
	publisher Publisher
	clock     clockwork.Clock

	// Collapses concurrent Analyze calls for the same normalized query
	// into one upstream run.
	group singleflight.Group
}

func NewService(fetcher Fetcher, scorer Scorer, store results.Store, publisher Publisher, clock clockwork.Clock) *Service {
	return &Service{
		fetcher:   fetcher,
		scorer:    scorer,
		store:     store,
		publisher: publisher,
		clock:     clock,
	}
}

// Analyze runs the full workflow for a query and returns the completed
// analysis. An empty or whitespace-only query is rejected up front
// without starting a run.
func (s *Service) Analyze(ctx context.Context, query string) (domain.Analysis, error) {
	if strings.TrimSpace(query) == "" {
		return domain.Analysis{}, apperrors.ValidationError(domain.ErrEmptyQuery.Error())
	}

	key := results.NormalizeQuery(query)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.run(ctx, query)
	})
	if err != nil {
		return domain.Analysis{}, err
	}
	return v.(domain.Analysis), nil
}

// Latest returns the freshest stored result for a query, if any.
func (s *Service) Latest(ctx context.Context, query string) (domain.Analysis, error) {
	if strings.TrimSpace(query) == "" {
		return domain.Analysis{}, apperrors.ValidationError(domain.ErrEmptyQuery.Error())
	}

	found, err := s.store.GetLatest(ctx, query)
	if errors.Is(err, domain.ErrResultNotFound) {
		metrics.CacheOpsTotal.WithLabelValues("miss").Inc()
		logging.WithQuery(query).Debug("No cached analysis result")
		return domain.Analysis{}, apperrors.NotFoundError("no analysis for this query yet")
	}
	if err != nil {
		metrics.CacheOpsTotal.WithLabelValues("error").Inc()
		return domain.Analysis{}, apperrors.InternalError("failed to load analysis", err)
	}
	metrics.CacheOpsTotal.WithLabelValues("hit").Inc()
	return found, nil
}

func (s *Service) run(ctx context.Context, query string) (domain.Analysis, error) {
	id := uuid.NewString()
	start := s.clock.Now()
	log := logging.WithAnalysis(id).With("query", query)

	s.publish(domain.Event{AnalysisID: id, Query: query, State: domain.StateFetching})

	posts, err := s.fetcher.Fetch(ctx, query)
	if err != nil {
		return domain.Analysis{}, s.fail(id, query, log, err)
	}
	log.Info("Posts fetched", "count", len(posts))

	s.publish(domain.Event{AnalysisID: id, Query: query, State: domain.StateScoring})

	sentiments, err := s.scoreAll(ctx, posts)
	if err != nil {
		return domain.Analysis{}, s.fail(id, query, log, err)
	}

	result, err := analysis.Aggregate(posts, sentiments, s.clock.Now())
	if errors.Is(err, domain.ErrNoSentiments) {
		return domain.Analysis{}, s.fail(id, query, log,
			apperrors.NotFoundError("no posts matched the query"))
	}
	if err != nil {
		return domain.Analysis{}, s.fail(id, query, log,
			apperrors.InternalError("aggregation failed", err))
	}

	completed := domain.Analysis{
		ID:        id,
		Query:     query,
		CreatedAt: s.clock.Now(),
		Result:    result,
	}

	// Storing is best-effort: a cache failure must not fail the run.
	if err := s.store.Save(ctx, completed); err != nil {
		log.Warn("Failed to store analysis result", "error", err)
	}

	s.publish(domain.Event{
		AnalysisID: id,
		Query:      query,
		State:      domain.StateDone,
		Result:     &result,
	})
	metrics.AnalysesTotal.WithLabelValues(string(domain.StateDone)).Inc()
	metrics.AnalysisDuration.Observe(s.clock.Since(start).Seconds())
	metrics.PostsScored.Observe(float64(len(posts)))
	log.Info("Analysis completed", "overall_score", result.OverallScore, "posts", len(posts))

	return completed, nil
}

// scoreAll issues one scorer call per post, all concurrently, and joins
// fail-fast: the first failure cancels the shared context, sibling
// results are discarded, and no partial aggregate is produced.
func (s *Service) scoreAll(ctx context.Context, posts []domain.Post) ([]domain.SentimentResult, error) {
	sentiments := make([]domain.SentimentResult, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			verdict, err := s.scorer.Score(gctx, post.Text)
			if err != nil {
				return err
			}
			sentiments[i] = verdict
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sentiments, nil
}

func (s *Service) fail(id, query string, log *slog.Logger, err error) error {
	structured := apperrors.AsStructuredError(err)
	s.publish(domain.Event{
		AnalysisID: id,
		Query:      query,
		State:      domain.StateFailed,
		Error:      structured.ToResponse().Error,
	})
	metrics.AnalysesTotal.WithLabelValues(string(domain.StateFailed)).Inc()
	log.Error("Analysis failed", "error", err)
	return err
}

func (s *Service) publish(event domain.Event) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
