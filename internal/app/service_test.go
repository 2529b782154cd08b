package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	apperrors "github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/errors"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/results"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	posts []domain.Post
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]domain.Post, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.posts, f.err
}

type fakeScorer struct {
	scores map[string]domain.SentimentResult
	failOn string
}

func (f *fakeScorer) Score(_ context.Context, text string) (domain.SentimentResult, error) {
	if text == f.failOn {
		return domain.SentimentResult{}, apperrors.ScoreError("model unavailable", nil)
	}
	return f.scores[text], nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *capturingPublisher) Publish(event domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturingPublisher) states() []domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	states := make([]domain.State, len(p.events))
	for i, e := range p.events {
		states[i] = e.State
	}
	return states
}

func newTestService(fetcher *fakeFetcher, scorer *fakeScorer) (*Service, *capturingPublisher, clockwork.Clock) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	publisher := &capturingPublisher{}
	store := results.NewMemoryStore(clock, 5*time.Minute)
	return NewService(fetcher, scorer, store, publisher, clock), publisher, clock
}

func testPosts(now time.Time) []domain.Post {
	return []domain.Post{
		{ID: "1", Text: "great launch", CreatedAt: now.Add(-10 * time.Minute)},
		{ID: "2", Text: "awful bugs", CreatedAt: now.Add(-20 * time.Minute)},
		{ID: "3", Text: "just okay", CreatedAt: now.Add(-30 * time.Minute)},
	}
}

func TestAnalyze_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{posts: testPosts(now)}
	scorer := &fakeScorer{scores: map[string]domain.SentimentResult{
		"great launch": {Score: 0.8},
		"awful bugs":   {Score: -0.7},
		"just okay":    {Score: 0.2},
	}}
	svc, publisher, _ := newTestService(fetcher, scorer)

	got, err := svc.Analyze(context.Background(), "launch")
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "launch", got.Query)
	assert.InDelta(t, 0.1, got.Result.OverallScore, 1e-9)
	assert.Equal(t, domain.Distribution{Positive: 1, Neutral: 1, Negative: 1}, got.Result.Distribution)
	// Index alignment: scores follow post order.
	assert.Equal(t, 0.8, got.Result.SentimentOverTime[0].Value)
	assert.Equal(t, -0.7, got.Result.SentimentOverTime[1].Value)

	assert.Equal(t, []domain.State{domain.StateFetching, domain.StateScoring, domain.StateDone}, publisher.states())
}

func TestAnalyze_EmptyQueryRejectedBeforeRunStarts(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, publisher, _ := newTestService(fetcher, &fakeScorer{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.Analyze(context.Background(), query)
		require.Error(t, err)
		assert.Equal(t, apperrors.TypeValidation, apperrors.AsStructuredError(err).Type)
	}

	assert.Zero(t, fetcher.calls)
	assert.Empty(t, publisher.states())
}

func TestAnalyze_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: apperrors.FetchError("rate limit exceeded", nil)}
	svc, publisher, _ := newTestService(fetcher, &fakeScorer{})

	_, err := svc.Analyze(context.Background(), "launch")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeFetch, apperrors.AsStructuredError(err).Type)

	states := publisher.states()
	require.Equal(t, []domain.State{domain.StateFetching, domain.StateFailed}, states)
	assert.Equal(t, "rate limit exceeded", publisher.events[len(publisher.events)-1].Error)
}

func TestAnalyze_ScoreFailureIsAllOrNothing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{posts: testPosts(now)}
	scorer := &fakeScorer{
		scores: map[string]domain.SentimentResult{
			"great launch": {Score: 0.8},
			"just okay":    {Score: 0.2},
		},
		failOn: "awful bugs",
	}
	svc, publisher, _ := newTestService(fetcher, scorer)

	_, err := svc.Analyze(context.Background(), "launch")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeScore, apperrors.AsStructuredError(err).Type)
	assert.Contains(t, publisher.states(), domain.StateFailed)

	// No partial aggregate was stored.
	_, err = svc.Latest(context.Background(), "launch")
	assert.Equal(t, apperrors.TypeNotFound, apperrors.AsStructuredError(err).Type)
}

func TestAnalyze_NoPostsFound(t *testing.T) {
	fetcher := &fakeFetcher{posts: nil}
	svc, publisher, _ := newTestService(fetcher, &fakeScorer{})

	_, err := svc.Analyze(context.Background(), "obscurequery")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeNotFound, apperrors.AsStructuredError(err).Type)
	assert.Equal(t, domain.StateFailed, publisher.states()[len(publisher.states())-1])
}

func TestLatest_ReturnsStoredResult(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{posts: testPosts(now)}
	scorer := &fakeScorer{scores: map[string]domain.SentimentResult{
		"great launch": {Score: 0.8},
		"awful bugs":   {Score: -0.7},
		"just okay":    {Score: 0.2},
	}}
	svc, _, _ := newTestService(fetcher, scorer)

	completed, err := svc.Analyze(context.Background(), "Launch")
	require.NoError(t, err)

	got, err := svc.Latest(context.Background(), "launch")
	require.NoError(t, err)
	assert.Equal(t, completed.ID, got.ID)
}

func TestLatest_MissIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(&fakeFetcher{}, &fakeScorer{})

	_, err := svc.Latest(context.Background(), "never-analyzed")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeNotFound, apperrors.AsStructuredError(err).Type)
}

type blockingFetcher struct {
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (f *blockingFetcher) Fetch(_ context.Context, _ string) ([]domain.Post, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	<-f.release
	return []domain.Post{{ID: "1", Text: "fine", CreatedAt: time.Now()}}, nil
}

func TestAnalyze_ConcurrentIdenticalQueriesCollapse(t *testing.T) {
	fetcher := &blockingFetcher{release: make(chan struct{})}
	scorer := &fakeScorer{scores: map[string]domain.SentimentResult{"fine": {Score: 0.1}}}
	svc, _, _ := newTestService(&fakeFetcher{}, scorer)
	svc.fetcher = fetcher

	var wg sync.WaitGroup
	ids := make([]string, 3)
	for i := 0; i < 3; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Analyze(context.Background(), "Same Query")
			if err == nil {
				ids[i] = got.ID
			}
		}()
	}

	// Let the goroutines pile up on singleflight, then release.
	time.Sleep(50 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[1], ids[2])
}

func TestAnalyze_GenericFetchErrorSurfacesAsInternal(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc, publisher, _ := newTestService(fetcher, &fakeScorer{})

	_, err := svc.Analyze(context.Background(), "launch")
	require.Error(t, err)

	last := publisher.events[len(publisher.events)-1]
	assert.Equal(t, domain.StateFailed, last.State)
	// The generic failure still carries a user-facing message.
	assert.NotEmpty(t, last.Error)
}
