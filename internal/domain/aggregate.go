package domain

// KeywordCount is one ranked keyword with its pooled occurrence count.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Distribution counts posts per sentiment bucket. The three counters
// always sum to the number of scored posts.
type Distribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the number of classified posts.
func (d Distribution) Total() int {
	return d.Positive + d.Neutral + d.Negative
}

// TimePoint is one entry of the sentiment-over-time series: a
// human-relative time label ("5m ago") and the post's score.
type TimePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AggregateResult is the complete output of one analysis run. It is an
// immutable value: built once per run, replaced wholesale by the next.
type AggregateResult struct {
	OverallScore      float64        `json:"overall_score"`
	OverallLabel      Label          `json:"overall_label"`
	SentimentOverTime []TimePoint    `json:"sentiment_over_time"`
	Distribution      Distribution   `json:"distribution"`
	ConfidenceScores  []float64      `json:"confidence_scores"`
	TopKeywords       []KeywordCount `json:"top_keywords"`
}
