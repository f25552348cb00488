package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

func TestGroqComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer token")
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "llama-test" || payload.MaxTokens != 120 || len(payload.Messages) != 1 {
			t.Fatalf("unexpected payload %+v", payload)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Bob owns the plan."}},
			},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.LLMConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "llama-test"})
	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "Who?", MaxTokens: 120})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != "Bob owns the plan." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGroqComplete_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"over capacity"}`))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.LLMConfig{APIKey: "k", BaseURL: ts.URL})
	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x", MaxTokens: 10})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 StatusError, got %v", err)
	}
}

func TestGroqComplete_NoChoicesIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.LLMConfig{APIKey: "k", BaseURL: ts.URL})
	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x", MaxTokens: 10})
	if err != nil || out != "" {
		t.Fatalf("expected empty output, got %q, %v", out, err)
	}
}

func TestTGIComplete_FramesAndStripsEcho(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload tgiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if !strings.HasPrefix(payload.Inputs, "<s>[INST] Summarize.") || !strings.HasSuffix(payload.Inputs, "[/INST]") {
			t.Fatalf("prompt not framed: %q", payload.Inputs)
		}
		if payload.Parameters.Temperature != nil || payload.Parameters.DoSample {
			t.Fatalf("zero temperature must decode greedily")
		}
		json.NewEncoder(w).Encode(tgiGeneration{GeneratedText: payload.Inputs + "  The team agreed to ship.  "})
	}))
	defer ts.Close()

	client := NewTGIClient(&config.LLMConfig{BaseURL: ts.URL})
	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "Summarize.", MaxTokens: 50})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != "The team agreed to ship." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTGIComplete_ArrayResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"Sentiment: Positive"}]`))
	}))
	defer ts.Close()

	client := NewTGIClient(&config.LLMConfig{BaseURL: ts.URL})
	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x", MaxTokens: 5, Temperature: 0.5})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != "Sentiment: Positive" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenAIComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":0,"model":"gpt-test",` +
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Launch is Monday."}}]}`))
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.LLMConfig{APIKey: "k", BaseURL: ts.URL, Model: "gpt-test"})
	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "When?", MaxTokens: 20})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != "Launch is Monday." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestAnthropicComplete_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.LLMConfig{APIKey: "k", BaseURL: ts.URL, Model: "claude-test"})
	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x", MaxTokens: 10})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 StatusError, got %v", err)
	}
}

func TestGeminiComplete_TimeoutIsRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGatewayTimeout)
		w.Write([]byte(`{"error":{"code":504,"message":"Deadline expired","status":"DEADLINE_EXCEEDED"}}`))
	}))
	defer ts.Close()

	cfg := config.LLMConfig{APIKey: "k", BaseURL: ts.URL, Model: "gemini-test", Timeout: 5 * time.Second, TimeoutRetries: 1}
	client, err := NewGeminiClient(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("new gemini client: %v", err)
	}

	_, err = client.Complete(context.Background(), CompletionRequest{Prompt: "x", MaxTokens: 10})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("expected 504 StatusError, got %v", err)
	}
	if !isTimeout(err) {
		t.Fatalf("expected a Gemini 504 to count as a timeout")
	}

	calls.Store(0)
	gw := NewGateway(client, cfg, zaptest.NewLogger(t), WithRetryDelay(time.Millisecond))
	_, err = gw.Invoke(context.Background(), entities.PromptEnvelope{Task: entities.TaskSummary, Prompt: "x"}, 10, 0)

	var timeout *entities.UpstreamTimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected UpstreamTimeoutError, got %v", err)
	}
	if timeout.Attempts != 2 || calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d (%d calls)", timeout.Attempts, calls.Load())
	}
}

func TestNewBackend_Providers(t *testing.T) {
	for _, provider := range []string{config.ProviderGroq, config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderTGI} {
		backend, err := NewBackend(context.Background(), &config.LLMConfig{Provider: provider, APIKey: "k", BaseURL: "http://localhost:1"})
		if err != nil {
			t.Fatalf("%s: %v", provider, err)
		}
		if backend.Name() != provider {
			t.Fatalf("expected %s backend, got %s", provider, backend.Name())
		}
	}

	if _, err := NewBackend(context.Background(), &config.LLMConfig{Provider: "bard"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
