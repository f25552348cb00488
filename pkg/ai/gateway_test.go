package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/taskcontext"
)

type fakeBackend struct {
	mu       sync.Mutex
	calls    int
	requests []CompletionRequest
	attempts []int
	reply    func(ctx context.Context, call int) (string, error)
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.requests = append(f.requests, req)
	f.attempts = append(f.attempts, taskcontext.GetAttempt(ctx))
	f.mu.Unlock()
	return f.reply(ctx, call)
}

func testGateway(t *testing.T, backend Backend, timeout time.Duration) *Gateway {
	cfg := config.LLMConfig{Timeout: timeout, TimeoutRetries: 1}
	return NewGateway(backend, cfg, zaptest.NewLogger(t), WithRetryDelay(0))
}

var summaryEnvelope = entities.PromptEnvelope{Task: entities.TaskSummary, Prompt: "Summarize.", MaxTokens: 350}

func TestInvoke_Success(t *testing.T) {
	backend := &fakeBackend{reply: func(context.Context, int) (string, error) {
		return "A short summary.", nil
	}}

	out, err := testGateway(t, backend, time.Second).Invoke(context.Background(), summaryEnvelope, 200, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "A short summary." {
		t.Fatalf("unexpected output %q", out)
	}
	if backend.calls != 1 {
		t.Fatalf("expected 1 call, got %d", backend.calls)
	}
	req := backend.requests[0]
	if req.Prompt != "Summarize." || req.MaxTokens != 200 || req.Temperature != 0.2 {
		t.Fatalf("request not forwarded verbatim: %+v", req)
	}
}

func TestInvoke_TimeoutRetriedOnce(t *testing.T) {
	backend := &fakeBackend{reply: func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}

	_, err := testGateway(t, backend, 20*time.Millisecond).Invoke(context.Background(), summaryEnvelope, 350, 0)

	var timeout *entities.UpstreamTimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected UpstreamTimeoutError, got %v", err)
	}
	if timeout.Attempts != 2 || backend.calls != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d (calls %d)", timeout.Attempts, backend.calls)
	}
	if backend.attempts[0] != 1 || backend.attempts[1] != 2 {
		t.Fatalf("attempt numbers not propagated: %v", backend.attempts)
	}
	if backend.requests[0] != backend.requests[1] {
		t.Fatalf("retry must resend identical input")
	}
}

func TestInvoke_TimeoutThenSuccess(t *testing.T) {
	backend := &fakeBackend{reply: func(_ context.Context, call int) (string, error) {
		if call == 1 {
			return "", &StatusError{Backend: "fake", StatusCode: 504, Body: "gateway timeout"}
		}
		return "Recovered.", nil
	}}

	out, err := testGateway(t, backend, time.Second).Invoke(context.Background(), summaryEnvelope, 350, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Recovered." || backend.calls != 2 {
		t.Fatalf("unexpected result %q after %d calls", out, backend.calls)
	}
}

func TestInvoke_UnavailableNotRetried(t *testing.T) {
	backend := &fakeBackend{reply: func(context.Context, int) (string, error) {
		return "", &StatusError{Backend: "fake", StatusCode: 503, Body: "overloaded"}
	}}

	_, err := testGateway(t, backend, time.Second).Invoke(context.Background(), summaryEnvelope, 350, 0)

	var unavailable *entities.UpstreamUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UpstreamUnavailableError, got %v", err)
	}
	if unavailable.Task != entities.TaskSummary {
		t.Fatalf("unexpected task %s", unavailable.Task)
	}
	if backend.calls != 1 {
		t.Fatalf("expected 1 call, got %d", backend.calls)
	}
}

func TestInvoke_EmptyOutputNotRetried(t *testing.T) {
	backend := &fakeBackend{reply: func(context.Context, int) (string, error) {
		return " \n\t", nil
	}}

	_, err := testGateway(t, backend, time.Second).Invoke(context.Background(), summaryEnvelope, 350, 0)

	var empty *entities.ModelOutputEmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected ModelOutputEmptyError, got %v", err)
	}
	if backend.calls != 1 {
		t.Fatalf("expected 1 call, got %d", backend.calls)
	}
}

func TestInvoke_DetachedFromCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{reply: func(callCtx context.Context, _ int) (string, error) {
		cancel()
		select {
		case <-callCtx.Done():
			return "", callCtx.Err()
		case <-time.After(20 * time.Millisecond):
			return "Finished anyway.", nil
		}
	}}

	out, err := testGateway(t, backend, time.Second).Invoke(ctx, summaryEnvelope, 350, 0)
	if err != nil {
		t.Fatalf("in-flight call was cancelled: %v", err)
	}
	if out != "Finished anyway." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestIsTimeout(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", errors.Join(errors.New("post"), context.DeadlineExceeded), true},
		{"408", &StatusError{StatusCode: 408}, true},
		{"504", &StatusError{StatusCode: 504}, true},
		{"500", &StatusError{StatusCode: 500}, false},
		{"refused", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTimeout(tc.err); got != tc.want {
				t.Fatalf("isTimeout(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
