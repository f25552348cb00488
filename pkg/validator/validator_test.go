package validator

import (
	"testing"
)

type askRequest struct {
	Transcript string `json:"transcript" validate:"notblank"`
	Question   string `json:"question" validate:"notblank"`
}

func TestValidate_NotBlank(t *testing.T) {
	v := New()

	if err := v.Validate(&askRequest{Transcript: "Alice: hi", Question: "Who spoke?"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Validate(&askRequest{Transcript: "Alice: hi", Question: "  \t"})
	field, ok := FirstInvalidField(err)
	if !ok || field != "question" {
		t.Fatalf("expected question to fail, got %q (%v)", field, err)
	}

	err = v.Validate(&askRequest{Transcript: "\n", Question: ""})
	field, ok = FirstInvalidField(err)
	if !ok || field != "transcript" {
		t.Fatalf("expected transcript to fail first, got %q (%v)", field, err)
	}
}
