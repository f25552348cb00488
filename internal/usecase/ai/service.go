package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// ModelGateway submits a prompt envelope to the language model
type ModelGateway interface {
	Invoke(ctx context.Context, env entities.PromptEnvelope, maxTokens int, temperature float64) (string, error)
}

// InsightExtraction produces the insight bundle for a transcript
type InsightExtraction interface {
	Extract(ctx context.Context, transcript entities.Transcript) (entities.InsightBundle, error)
}

// QuestionAnswering answers a question using only a transcript
type QuestionAnswering interface {
	Answer(ctx context.Context, transcript entities.Transcript, question string) (entities.AnswerResult, error)
}

// Service defines the transcript insight operations
type Service interface {
	InsightExtraction
	QuestionAnswering
}

type aiService struct {
	engine         *prompt.Engine
	gateway        ModelGateway
	parser         *Parser
	maxTokens      int
	temperature    float64
	maxConcurrency int
	logger         *zap.Logger
}

// NewAIService constructs the insight service. It keeps no per-request state.
func NewAIService(engine *prompt.Engine, gateway ModelGateway, cfg config.LLMConfig, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = len(prompt.Tasks())
	}
	return &aiService{
		engine:         engine,
		gateway:        gateway,
		parser:         NewParser(),
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		maxConcurrency: concurrency,
		logger:         logger,
	}
}

// invoke calls the gateway with the task cap clamped to the configured ceiling
func (s *aiService) invoke(ctx context.Context, env entities.PromptEnvelope) (string, error) {
	maxTokens := env.MaxTokens
	if s.maxTokens > 0 && s.maxTokens < maxTokens {
		maxTokens = s.maxTokens
	}
	return s.gateway.Invoke(ctx, env, maxTokens, s.temperature)
}
