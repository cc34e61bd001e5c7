package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/periodpain/pain-helper/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client is the single choke point for all calls against the remote
// pain tracking API. Every operation either returns the typed payload
// or an error: a *RemoteError when the backend answered with a
// non-success status, or the wrapped transport error when no response
// arrived. No retries, no deduplication; each call is independent.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL (including the
// /api/v1 prefix).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ListPainHistory returns up to limit pain entries in the order the
// server sent them. The client never re-sorts.
func (c *Client) ListPainHistory(ctx context.Context, userID string, limit int) ([]domain.PainEntry, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var out struct {
		Entries []domain.PainEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/pain/"+url.PathEscape(userID), query, nil, &out, nil); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// CreatePainEntry submits a pain entry and returns the new entry id.
// An Idempotency-Key header is generated per attempt so a backend that
// honors it can drop duplicate writes; the client itself never retries.
func (c *Client) CreatePainEntry(ctx context.Context, userID string, entry domain.PainEntryInput) (string, error) {
	query := url.Values{"user_id": {userID}}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var out struct {
		EntryID EntryID `json:"entry_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/pain", query, entry, &out, headers); err != nil {
		return "", err
	}
	return string(out.EntryID), nil
}

// CreateLifestyleEntry submits a lifestyle entry and returns the new
// entry id.
func (c *Client) CreateLifestyleEntry(ctx context.Context, userID string, entry domain.LifestyleEntryInput) (string, error) {
	query := url.Values{"user_id": {userID}}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	var out struct {
		EntryID EntryID `json:"entry_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/lifestyle", query, entry, &out, headers); err != nil {
		return "", err
	}
	return string(out.EntryID), nil
}

// GetPredictions fetches a horizon of predicted daily values.
func (c *Client) GetPredictions(ctx context.Context, userID string, days int) (*domain.PredictionEnvelope, error) {
	query := url.Values{
		"user_id": {userID},
		"days":    {strconv.Itoa(days)},
	}
	var out domain.PredictionEnvelope
	if err := c.do(ctx, http.MethodGet, "/predictions", query, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecommendations fetches categorized recommendations.
func (c *Client) GetRecommendations(ctx context.Context, userID string) (*domain.RecommendationEnvelope, error) {
	query := url.Values{"user_id": {userID}}
	var out domain.RecommendationEnvelope
	if err := c.do(ctx, http.MethodGet, "/recommendations", query, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitFeedback reports a helpfulness score for a recommendation.
// Fire-and-forget: the request carries everything in query parameters
// and no payload comes back.
func (c *Client) SubmitFeedback(ctx context.Context, userID, recommendationType string, score int) error {
	query := url.Values{
		"user_id":             {userID},
		"recommendation_type": {recommendationType},
		"helpfulness_score":   {strconv.Itoa(score)},
	}
	return c.do(ctx, http.MethodPost, "/feedback", query, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, headers map[string]string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    detailMessage(data, resp.Status),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}

// detailMessage extracts the backend's structured {"detail": ...} error
// message, falling back to the HTTP status text.
func detailMessage(body []byte, status string) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return status
}
