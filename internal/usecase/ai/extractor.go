package ai

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-insights/pkg/taskcontext"
)

// Extract runs the four insight tasks over transcript and assembles the bundle.
//
// Every envelope is built before any model call, so input faults cost nothing
// upstream. The model calls run concurrently and all of them are awaited; if
// any sub-task fails the whole call fails with every failure listed.
func (s *aiService) Extract(ctx context.Context, transcript entities.Transcript) (entities.InsightBundle, error) {
	tasks := prompt.Tasks()
	envelopes := make([]entities.PromptEnvelope, len(tasks))
	for i, task := range tasks {
		env, err := s.engine.Build(task, transcript, prompt.Extra{})
		if err != nil {
			return entities.InsightBundle{}, err
		}
		envelopes[i] = env
	}

	start := time.Now()
	s.logger.Info("🧠 Extracting insights",
		append(taskcontext.Fields(ctx), zap.Int("transcript_chars", transcript.Length()))...)

	outputs := make([]string, len(tasks))
	errs := make([]error, len(tasks))

	// A plain group: one failed task must not cancel its siblings
	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i := range envelopes {
		g.Go(func() error {
			outputs[i], errs[i] = s.invoke(ctx, envelopes[i])
			return nil
		})
	}
	_ = g.Wait()

	var (
		summary     string
		decisions   []string
		actionItems []entities.ActionItem
		sentiment   entities.Sentiment
		failures    []entities.TaskFailure
	)
	for i, task := range tasks {
		err := errs[i]
		if err == nil {
			switch task {
			case entities.TaskSummary:
				summary, err = s.parser.Summary(outputs[i])
			case entities.TaskDecisions:
				decisions, err = s.parser.Decisions(outputs[i])
			case entities.TaskActionItems:
				actionItems, err = s.parser.ActionItems(outputs[i])
			case entities.TaskSentiment:
				sentiment, err = s.parser.Sentiment(outputs[i])
			}
		}
		if err != nil {
			failures = append(failures, entities.TaskFailure{Task: task, Err: err})
		}
	}

	if len(failures) > 0 {
		partial := &entities.ExtractionPartialFailureError{Failures: failures}
		s.logger.Warn("⚠️ Insight extraction failed",
			append(taskcontext.Fields(ctx),
				zap.Any("failed_tasks", partial.FailedTasks()),
				zap.Error(multierr.Combine(partial.Unwrap()...)),
				zap.Duration("duration", time.Since(start)),
			)...)
		return entities.InsightBundle{}, partial
	}

	s.logger.Info("✅ Insights extracted",
		append(taskcontext.Fields(ctx),
			zap.Int("decisions", len(decisions)),
			zap.Int("action_items", len(actionItems)),
			zap.String("sentiment", string(sentiment.Label)),
			zap.Duration("duration", time.Since(start)),
		)...)

	return entities.NewInsightBundle(summary, decisions, actionItems, sentiment), nil
}
