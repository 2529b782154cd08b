package analysis

import (
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
)

// Aggregate computes the full analysis result for one run.
//
// posts and sentiments must be index-aligned: sentiments[i] is the verdict
// for posts[i]. A length mismatch is an error rather than undefined
// behavior, and an empty input is an explicit ErrNoSentiments instead of a
// NaN mean. The caller injects now so the relative-time labels (and with
// them the whole function) stay deterministic under test.
func Aggregate(posts []domain.Post, sentiments []domain.SentimentResult, now time.Time) (domain.AggregateResult, error) {
	if len(posts) != len(sentiments) {
		return domain.AggregateResult{}, domain.ErrLengthMismatch
	}
	if len(sentiments) == 0 {
		return domain.AggregateResult{}, domain.ErrNoSentiments
	}

	var sum float64
	var dist domain.Distribution
	series := make([]domain.TimePoint, len(posts))
	confidences := make([]float64, len(sentiments))
	texts := make([]string, len(posts))

	for i, s := range sentiments {
		sum += s.Score

		switch domain.Classify(s.Score) {
		case domain.LabelPositive:
			dist.Positive++
		case domain.LabelNegative:
			dist.Negative++
		default:
			dist.Neutral++
		}

		series[i] = domain.TimePoint{
			Label: RelativeTime(posts[i].CreatedAt, now),
			Value: s.Score,
		}
		confidences[i] = s.ConfidenceOrDefault()
		texts[i] = posts[i].Text
	}

	overall := sum / float64(len(sentiments))

	return domain.AggregateResult{
		OverallScore:      overall,
		OverallLabel:      domain.Classify(overall),
		SentimentOverTime: series,
		Distribution:      dist,
		ConfidenceScores:  confidences,
		TopKeywords:       ExtractTopKeywords(texts),
	}, nil
}
