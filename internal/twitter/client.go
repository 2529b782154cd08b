// Package twitter implements the post fetcher against the Twitter API v2
// recent-search endpoint.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/domain"
	apperrors "github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/errors"
	"github.com/21jritz/SocailSentiment-Real-Time-Sentiment-Analysis-on-Socail-Media/internal/metrics"
)

const defaultBaseURL = "https://api.twitter.com"

// Client fetches recent posts matching a query. Safe for concurrent use.
type Client struct {
	bearerToken string
	baseURL     string
	httpClient  *http.Client
	maxResults  int
}

// NewClient creates a Client. baseURL overrides the production API host
// when non-empty (used by tests and the dev proxy setup). maxResults
// bounds how many posts one search returns.
func NewClient(bearerToken, baseURL string, maxResults int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		bearerToken: bearerToken,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		maxResults:  maxResults,
	}
}

// searchResponse mirrors the recent-search payload.
type searchResponse struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Fetch returns recent posts matching query, in the order the API
// returned them (reverse-chronological). Cancellation comes from ctx,
// backstopped by the client's own per-request timeout. No retry.
func (c *Client) Fetch(ctx context.Context, query string) ([]domain.Post, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(c.maxResults))
	params.Set("tweet.fields", "created_at")

	endpoint := fmt.Sprintf("%s/2/tweets/search/recent?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("twitter").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("twitter", "error").Inc()
		return nil, apperrors.FetchError("failed to reach post search API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("twitter", "error").Inc()
		return nil, apperrors.FetchError("failed to read search response", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("twitter", "error").Inc()
		return nil, apperrors.FetchError(upstreamMessage(body, resp.StatusCode), nil).
			WithField("status_code", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("twitter", "error").Inc()
		return nil, apperrors.FetchError("search API returned malformed JSON", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("twitter", "success").Inc()

	posts := make([]domain.Post, 0, len(parsed.Data))
	for _, tweet := range parsed.Data {
		posts = append(posts, domain.Post{
			ID:        tweet.ID,
			Text:      tweet.Text,
			CreatedAt: tweet.CreatedAt,
		})
	}
	return posts, nil
}

// upstreamMessage surfaces the API's own error text verbatim when present.
func upstreamMessage(body []byte, statusCode int) string {
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Errors) > 0 && parsed.Errors[0].Message != "" {
			return parsed.Errors[0].Message
		}
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Title != "" {
			return parsed.Title
		}
	}
	return fmt.Sprintf("post search API returned status %d", statusCode)
}
