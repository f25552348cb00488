// Package dispatcher is a Go client for the insight and Q&A endpoints.
package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
)

// Intent is what the caller wants done with a transcript
type Intent int

const (
	IntentInsights Intent = iota
	IntentQuestion
)

// ErrUnknownIntent is returned by Dispatch for an intent it cannot route
var ErrUnknownIntent = errors.New("unknown intent")

// APIError is a failure reported by the server in its error envelope
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

// Result holds whichever response the dispatched intent produced
type Result struct {
	Intent   Intent
	Insights *insight.InsightsResponse
	Answer   *insight.QnAResponse
}

// Client calls a meeting insights server
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the server at baseURL. Model calls can take a
// while, so the default HTTP timeout is generous.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insights requests the insight bundle for transcript
func (c *Client) Insights(ctx context.Context, transcript string) (*insight.InsightsResponse, error) {
	var out insight.InsightsResponse
	if err := c.post(ctx, "/v1/insights", insight.InsightsRequest{Transcript: transcript}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask requests an answer to question grounded in transcript
func (c *Client) Ask(ctx context.Context, transcript, question string) (*insight.QnAResponse, error) {
	var out insight.QnAResponse
	req := insight.QnARequest{Transcript: transcript, Question: question}
	if err := c.post(ctx, "/v1/qna", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dispatch routes transcript to the endpoint serving intent
func (c *Client) Dispatch(ctx context.Context, intent Intent, transcript, question string) (*Result, error) {
	switch intent {
	case IntentInsights:
		res, err := c.Insights(ctx, transcript)
		if err != nil {
			return nil, err
		}
		return &Result{Intent: intent, Insights: res}, nil
	case IntentQuestion:
		res, err := c.Ask(ctx, transcript, question)
		if err != nil {
			return nil, err
		}
		return &Result{Intent: intent, Answer: res}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownIntent, intent)
	}
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodeAPIError reads the error envelope, falling back to the raw body
func decodeAPIError(status int, body []byte) error {
	var env insight.ErrorResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Kind != "" {
		return &APIError{Status: status, Kind: env.Error.Kind, Message: env.Error.Message}
	}
	return &APIError{
		Status:  status,
		Kind:    http.StatusText(status),
		Message: strings.TrimSpace(string(body)),
	}
}
