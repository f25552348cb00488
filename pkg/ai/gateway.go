package ai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/taskcontext"
)

const defaultRetryDelay = 250 * time.Millisecond

// Gateway submits prompt envelopes to a model backend under the service's
// timeout and retry policy. Timeouts are retried; every other failure is
// surfaced after the first attempt.
type Gateway struct {
	backend        Backend
	timeout        time.Duration
	timeoutRetries int
	retryDelay     time.Duration
	logger         *zap.Logger
}

// GatewayOption customizes a Gateway
type GatewayOption func(*Gateway)

// WithRetryDelay sets the pause before a timed-out call is retried
func WithRetryDelay(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.retryDelay = d
	}
}

// NewGateway creates a gateway over backend using the timeout settings of cfg
func NewGateway(backend Backend, cfg config.LLMConfig, logger *zap.Logger, opts ...GatewayOption) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		backend:        backend,
		timeout:        cfg.Timeout,
		timeoutRetries: cfg.TimeoutRetries,
		retryDelay:     defaultRetryDelay,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invoke submits env and returns the raw model text.
//
// The call is detached from ctx cancellation so an abandoned request does not
// abort work already sent to the model; each attempt is bounded by the gateway
// timeout instead. No retry is started once ctx is done.
func (g *Gateway) Invoke(ctx context.Context, env entities.PromptEnvelope, maxTokens int, temperature float64) (string, error) {
	base := taskcontext.TaskBegin(context.WithoutCancel(ctx), env.Task.String())
	req := CompletionRequest{
		Prompt:      env.Prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	attempt := 0
	operation := func() (string, error) {
		attempt++
		actx := taskcontext.SetAttempt(base, attempt)
		fields := append(taskcontext.Fields(actx),
			zap.String("backend", g.backend.Name()),
			zap.Int("max_tokens", maxTokens),
			zap.Int("prompt_chars", env.Size()),
		)
		g.logger.Debug("🤖 Invoking model", fields...)

		start := time.Now()
		text, err := g.complete(actx, req)
		fields = append(fields, zap.Duration("duration", time.Since(start)))

		if err != nil {
			if isTimeout(err) {
				g.logger.Warn("⏱️ Model call timed out", append(fields, zap.Error(err))...)
				return "", err
			}
			g.logger.Error("❌ Model backend unavailable", append(fields, zap.Error(err))...)
			return "", backoff.Permanent(&entities.UpstreamUnavailableError{Task: env.Task, Err: err})
		}
		if strings.TrimSpace(text) == "" {
			g.logger.Warn("⚠️ Model returned empty output", fields...)
			return "", backoff.Permanent(&entities.ModelOutputEmptyError{Task: env.Task})
		}

		g.logger.Debug("✅ Model call completed", append(fields, zap.Int("output_chars", len(text)))...)
		return text, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.retryDelay), uint64(g.timeoutRetries)),
		ctx,
	)
	text, err := backoff.RetryWithData(operation, policy)
	if err == nil {
		return text, nil
	}

	var unavailable *entities.UpstreamUnavailableError
	var empty *entities.ModelOutputEmptyError
	if errors.As(err, &unavailable) || errors.As(err, &empty) {
		return "", err
	}
	return "", &entities.UpstreamTimeoutError{Task: env.Task, Attempts: attempt, Err: err}
}

func (g *Gateway) complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.backend.Complete(ctx, req)
}

// isTimeout reports whether err means the model did not answer in time
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusRequestTimeout || statusErr.StatusCode == http.StatusGatewayTimeout
	}
	return false
}
