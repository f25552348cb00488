package entities

import (
	"strings"
	"unicode/utf8"
)

// Transcript is the raw meeting text supplied with a request.
// It has no identity beyond the request that carries it and is never stored.
type Transcript string

// NewTranscript wraps raw text as a Transcript
func NewTranscript(text string) Transcript {
	return Transcript(text)
}

// Text returns the transcript content
func (t Transcript) Text() string {
	return string(t)
}

// IsBlank reports whether the transcript holds only whitespace
func (t Transcript) IsBlank() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Length returns the transcript size in runes
func (t Transcript) Length() int {
	return utf8.RuneCountInString(string(t))
}

// PromptEnvelope is the fully assembled payload sent to the model for one task
type PromptEnvelope struct {
	Task      ExtractionTask
	Prompt    string
	MaxTokens int // per-task generation cap
	Question  string
}

// Size returns the envelope prompt size in runes
func (e PromptEnvelope) Size() int {
	return utf8.RuneCountInString(e.Prompt)
}
