package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-insights/pkg/taskcontext"
)

// Answer replies to question using only transcript. Each call is independent.
func (s *aiService) Answer(ctx context.Context, transcript entities.Transcript, question string) (entities.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return entities.AnswerResult{}, entities.ErrEmptyQuestion
	}

	env, err := s.engine.Build(entities.TaskAnswer, transcript, prompt.Extra{Question: question})
	if err != nil {
		return entities.AnswerResult{}, err
	}

	raw, err := s.invoke(ctx, env)
	if err != nil {
		s.logger.Warn("⚠️ Question answering failed", append(taskcontext.Fields(ctx), zap.Error(err))...)
		return entities.AnswerResult{}, err
	}

	answer, err := s.parser.Answer(raw)
	if err != nil {
		return entities.AnswerResult{}, err
	}

	s.logger.Info("💬 Question answered",
		append(taskcontext.Fields(ctx), zap.Int("answer_chars", len(answer)))...)

	return entities.AnswerResult{Question: env.Question, Answer: answer}, nil
}
