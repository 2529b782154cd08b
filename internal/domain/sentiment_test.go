package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  Label
	}{
		{"strongly positive", 0.9, LabelPositive},
		{"just above threshold", 0.31, LabelPositive},
		{"positive boundary is neutral", 0.3, LabelNeutral},
		{"zero", 0.0, LabelNeutral},
		{"negative boundary is neutral", -0.3, LabelNeutral},
		{"just below threshold", -0.31, LabelNegative},
		{"strongly negative", -0.9, LabelNegative},
		// Out-of-range scores are accepted as-is, no clamping.
		{"above valid range", 1.5, LabelPositive},
		{"below valid range", -1.5, LabelNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.score))
		})
	}
}

func TestConfidenceOrDefault(t *testing.T) {
	c := 0.7
	assert.Equal(t, 0.7, SentimentResult{Score: 0, Confidence: &c}.ConfidenceOrDefault())
	assert.Equal(t, 1.0, SentimentResult{Score: 0}.ConfidenceOrDefault())
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateFetching.Terminal())
	assert.False(t, StateScoring.Terminal())
}
