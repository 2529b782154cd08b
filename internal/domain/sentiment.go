package domain

// Classification thresholds. A score strictly above PositiveThreshold is
// positive, strictly below NegativeThreshold is negative, everything in
// between (boundaries included) is neutral.
const (
	PositiveThreshold = 0.3
	NegativeThreshold = -0.3
)

// Label is the three-way sentiment classification of a score.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// SentimentResult is one scorer verdict for one post. Confidence is
// optional on the wire; a nil Confidence means the scorer omitted it
// and defaults to 1.0 during aggregation.
type SentimentResult struct {
	Score      float64  `json:"score"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ConfidenceOrDefault returns the confidence value, or 1.0 when absent.
func (s SentimentResult) ConfidenceOrDefault() float64 {
	if s.Confidence == nil {
		return 1.0
	}
	return *s.Confidence
}

// Classify buckets a score using the fixed thresholds. Scores outside
// [-1,1] are accepted as-is; the buckets are exhaustive either way.
func Classify(score float64) Label {
	switch {
	case score > PositiveThreshold:
		return LabelPositive
	case score < NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
