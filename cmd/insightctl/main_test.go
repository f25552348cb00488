package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
	"github.com/johnquangdev/meeting-insights/pkg/dispatcher"
)

const sampleTranscript = "Alice: Let's launch next Monday.\nBob: I'll prepare the rollout plan by Friday."

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/insights":
			var req insight.InsightsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if strings.TrimSpace(req.Transcript) == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"kind":"EmptyTranscript","message":"Transcript must not be empty"}}`))
				return
			}
			bob := "Bob"
			json.NewEncoder(w).Encode(insight.InsightsResponse{
				Summary:   "The team agreed to launch next Monday.",
				Decisions: []string{"Launch next Monday"},
				ActionItems: []insight.ActionItemResponse{
					{Task: "Prepare the rollout plan by Friday", Owner: &bob},
					{Task: "Book the retro", Owner: nil},
				},
				Sentiment: insight.SentimentResponse{Label: "Positive", Justification: "Everyone agreed."},
			})
		case "/v1/qna":
			var req insight.QnARequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(insight.QnAResponse{Question: req.Question, Answer: "Bob is preparing it."})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func runCLI(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestInsights_TableFromStdin(t *testing.T) {
	ts := newTestServer(t)

	out, err := runCLI(t, []string{"insights", "--server", ts.URL}, sampleTranscript)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	requireContains(t, out, "The team agreed to launch next Monday.")
	requireContains(t, out, "Launch next Monday")
	requireContains(t, out, "Prepare the rollout plan by Friday")
	requireContains(t, out, "Bob")
	requireContains(t, out, "Positive: Everyone agreed.")
}

func TestInsights_JSONFromFile(t *testing.T) {
	ts := newTestServer(t)
	path := filepath.Join(t.TempDir(), "standup.txt")
	if err := os.WriteFile(path, []byte(sampleTranscript), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	out, err := runCLI(t, []string{"insights", path, "-s", ts.URL, "-o", "json"}, "")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}

	var res insight.InsightsResponse
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	assert.Equal(t, 2, len(res.ActionItems))
	assert.Equal(t, "Bob", *res.ActionItems[0].Owner)
	if res.ActionItems[1].Owner != nil {
		t.Fatalf("expected null owner")
	}
}

func TestInsights_YAMLUsesWireNames(t *testing.T) {
	ts := newTestServer(t)

	out, err := runCLI(t, []string{"insights", "-s", ts.URL, "-o", "yaml"}, sampleTranscript)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	requireContains(t, out, "action_items:")
	requireContains(t, out, "owner: null")
	requireContains(t, out, "label: Positive")
}

func TestInsights_ServerErrorIsReturned(t *testing.T) {
	ts := newTestServer(t)

	_, err := runCLI(t, []string{"insights", "-s", ts.URL}, "   ")
	if err == nil {
		t.Fatal("expected error")
	}
	requireContains(t, err.Error(), "EmptyTranscript")
}

func TestAsk(t *testing.T) {
	ts := newTestServer(t)

	out, err := runCLI(t, []string{"ask", "Who is preparing the rollout plan?", "-s", ts.URL}, sampleTranscript)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	requireContains(t, out, "Q: Who is preparing the rollout plan?")
	requireContains(t, out, "A: Bob is preparing it.")
}

func TestUnsupportedOutputFormat(t *testing.T) {
	_, err := runCLI(t, []string{"insights", "-o", "xml"}, sampleTranscript)
	if err == nil {
		t.Fatal("expected error")
	}
	requireContains(t, err.Error(), "unsupported output format")
}

func TestInsightsFileHandler_SameStemDoesNotCollide(t *testing.T) {
	ts := newTestServer(t)
	dir := t.TempDir()
	handler := insightsFileHandler(dispatcher.New(ts.URL), dir, zaptest.NewLogger(t))

	for _, name := range []string{"standup.txt", "standup.md"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(sampleTranscript), 0o644); err != nil {
			t.Fatalf("write transcript: %v", err)
		}
		if err := handler(context.Background(), path); err != nil {
			t.Fatalf("handler %s: %v", name, err)
		}
	}

	for _, name := range []string{"standup.txt.insights.json", "standup.md.insights.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestInsightsFileHandler_WritesBundle(t *testing.T) {
	ts := newTestServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "standup.md")
	if err := os.WriteFile(path, []byte(sampleTranscript), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	handler := insightsFileHandler(dispatcher.New(ts.URL), dir, zaptest.NewLogger(t))
	if err := handler(context.Background(), path); err != nil {
		t.Fatalf("handler: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "standup.md"+insightsSuffix))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var res insight.InsightsResponse
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	assert.Equal(t, []string{"Launch next Monday"}, res.Decisions)
}
