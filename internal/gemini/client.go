// Package gemini implements the sentiment scorer against the Gemini
// generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	apperrors "github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/errors"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/metrics"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const scorePrompt = `Analyze the sentiment of the following text. Respond with only a JSON object of the form {"score": <number between -1 and 1>, "confidence": <number between 0 and 1>}, no markdown, no explanation.

Text: %s`

// Client scores text sentiment. One call per post; safe for concurrent use.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. baseURL overrides the production API host
// when non-empty (used by tests and the dev proxy setup).
func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Score sends one text to the model and parses its JSON verdict. A
// missing confidence field in the model's reply is preserved as nil and
// defaulted during aggregation.
func (c *Client) Score(ctx context.Context, text string) (domain.SentimentResult, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: fmt.Sprintf(scorePrompt, text)}}},
		},
	})
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("failed to marshal score request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("gemini").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("gemini", "error").Inc()
		return domain.SentimentResult{}, apperrors.ScoreError("failed to reach sentiment API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("gemini", "error").Inc()
		return domain.SentimentResult{}, apperrors.ScoreError("failed to read sentiment response", err)
	}

	var parsed generateResponse
	if unmarshalErr := json.Unmarshal(body, &parsed); unmarshalErr != nil && resp.StatusCode == http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("gemini", "error").Inc()
		return domain.SentimentResult{}, apperrors.ScoreError("sentiment API returned malformed JSON", unmarshalErr)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("gemini", "error").Inc()
		message := parsed.Error.Message
		if message == "" {
			message = fmt.Sprintf("sentiment API returned status %d", resp.StatusCode)
		}
		return domain.SentimentResult{}, apperrors.ScoreError(message, nil).
			WithField("status_code", resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("gemini", "success").Inc()

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return domain.SentimentResult{}, apperrors.ScoreError("sentiment API returned no candidates", nil)
	}

	result, err := parseVerdict(parsed.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return domain.SentimentResult{}, apperrors.ScoreError("sentiment API returned an unparseable verdict", err)
	}
	return result, nil
}

// parseVerdict extracts the {score, confidence} object from the model's
// reply text. Models occasionally wrap JSON in markdown fences despite the
// prompt, so those are stripped first.
func parseVerdict(text string) (domain.SentimentResult, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var result domain.SentimentResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return domain.SentimentResult{}, fmt.Errorf("invalid verdict %q: %w", text, err)
	}
	return result, nil
}
