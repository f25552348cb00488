// Package prompt builds the task-specific prompt envelopes sent to the model.
//
// The prompt is the only schema the model sees, so every template states its
// output shape and the sentinel to use when nothing is found. The normalizers
// in the ai package parse exactly those shapes.
package prompt

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Extra carries task-specific parameters
type Extra struct {
	Question string // required for TaskAnswer, ignored otherwise
}

// Engine builds prompt envelopes bounded by the model input budget.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	maxInputChars int
}

// NewEngine creates an Engine rejecting envelopes larger than maxInputChars runes
func NewEngine(maxInputChars int) *Engine {
	return &Engine{maxInputChars: maxInputChars}
}

// Tasks returns the insight tasks in canonical bundle order
func Tasks() []entities.ExtractionTask {
	tasks := make([]entities.ExtractionTask, len(entities.InsightTasks))
	copy(tasks, entities.InsightTasks)
	return tasks
}

// Build assembles the envelope for task over transcript.
// Identical inputs always produce byte-identical envelopes.
func (e *Engine) Build(task entities.ExtractionTask, transcript entities.Transcript, extra Extra) (entities.PromptEnvelope, error) {
	instruction, ok := instructions[task]
	if !ok {
		return entities.PromptEnvelope{}, fmt.Errorf("%w: %q", entities.ErrUnknownTask, task)
	}
	if transcript.IsBlank() {
		return entities.PromptEnvelope{}, entities.ErrEmptyTranscript
	}

	question := strings.TrimSpace(extra.Question)
	if task == entities.TaskAnswer && question == "" {
		return entities.PromptEnvelope{}, entities.ErrEmptyQuestion
	}

	var sb strings.Builder
	sb.WriteString(instruction)
	sb.WriteString("\n\nTranscript:\n---\n")
	sb.WriteString(strings.TrimSpace(transcript.Text()))
	sb.WriteString("\n---\n")
	if task == entities.TaskAnswer {
		sb.WriteString("\nQuestion: ")
		sb.WriteString(question)
		sb.WriteString("\n")
	}

	env := entities.PromptEnvelope{
		Task:      task,
		Prompt:    sb.String(),
		MaxTokens: defaultMaxTokens[task],
	}
	if task == entities.TaskAnswer {
		env.Question = question
	}

	if e.maxInputChars > 0 && env.Size() > e.maxInputChars {
		return entities.PromptEnvelope{}, &entities.InputTooLargeError{
			Task:  task,
			Size:  env.Size(),
			Limit: e.maxInputChars,
		}
	}

	return env, nil
}
