package domain

import "time"

// Analysis is one completed run: the aggregate plus run metadata.
type Analysis struct {
	ID        string          `json:"id"`
	Query     string          `json:"query"`
	CreatedAt time.Time       `json:"created_at"`
	Result    AggregateResult `json:"result"`
}

// Event is one lifecycle notification for a run, pushed to dashboard
// clients. Result is set only on Done, Error only on Failed.
type Event struct {
	AnalysisID string           `json:"analysis_id"`
	Query      string           `json:"query"`
	State      State            `json:"state"`
	Error      string           `json:"error,omitempty"`
	Result     *AggregateResult `json:"result,omitempty"`
}
