package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

const instEnd = "[/INST]"

// TGIClient talks to a self-hosted text-generation-inference server running an instruct model
type TGIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTGIClient creates a TGI backend for cfg.BaseURL. The API key is optional.
func NewTGIClient(cfg *config.LLMConfig) *TGIClient {
	return &TGIClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{},
	}
}

type tgiParameters struct {
	MaxNewTokens   int      `json:"max_new_tokens"`
	Temperature    *float64 `json:"temperature,omitempty"`
	DoSample       bool     `json:"do_sample"`
	ReturnFullText bool     `json:"return_full_text"`
}

type tgiRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters tgiParameters `json:"parameters"`
}

type tgiGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Name identifies the backend in logs
func (c *TGIClient) Name() string {
	return config.ProviderTGI
}

// Complete wraps the prompt in the instruct framing and returns the text after it
func (c *TGIClient) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	params := tgiParameters{MaxNewTokens: in.MaxTokens}
	// TGI rejects a zero temperature; greedy decoding is the default
	if in.Temperature > 0 {
		t := in.Temperature
		params.Temperature = &t
		params.DoSample = true
	}

	b, err := json.Marshal(tgiRequest{Inputs: frameInstruct(in.Prompt), Parameters: params})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		if len(body) > 2048 {
			body = body[:2048]
		}
		return "", &StatusError{Backend: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	text, err := decodeGeneration(body)
	if err != nil {
		return "", err
	}
	return stripEcho(text), nil
}

func frameInstruct(prompt string) string {
	return "<s>[INST] " + prompt + " " + instEnd
}

// decodeGeneration accepts both the single object returned by /generate and
// the one-element array some hosted endpoints return
func decodeGeneration(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var gens []tgiGeneration
		if err := json.Unmarshal(trimmed, &gens); err != nil {
			return "", fmt.Errorf("decode tgi response: %w", err)
		}
		if len(gens) == 0 {
			return "", nil
		}
		return gens[0].GeneratedText, nil
	}

	var gen tgiGeneration
	if err := json.Unmarshal(trimmed, &gen); err != nil {
		return "", fmt.Errorf("decode tgi response: %w", err)
	}
	return gen.GeneratedText, nil
}

// stripEcho drops an echoed prompt when the server returns the full text
func stripEcho(text string) string {
	if i := strings.LastIndex(text, instEnd); i >= 0 {
		return strings.TrimSpace(text[i+len(instEnd):])
	}
	return strings.TrimSpace(text)
}
