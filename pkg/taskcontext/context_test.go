package taskcontext

import (
	"context"
	"testing"
)

func TestTaskMetadata(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1", "insights")
	ctx = TaskBegin(ctx, "summary")

	md := GetTaskMetadata(ctx)
	if md.RequestID != "req-1" || md.Capability != "insights" || md.Task != "summary" {
		t.Fatalf("unexpected metadata %+v", md)
	}
	if md.Attempt != 1 {
		t.Fatalf("expected first attempt, got %d", md.Attempt)
	}
	if md.StartTime.IsZero() {
		t.Fatalf("expected start time to be set")
	}

	ctx = SetAttempt(ctx, 2)
	if GetAttempt(ctx) != 2 {
		t.Fatalf("expected attempt 2, got %d", GetAttempt(ctx))
	}
}

func TestFields_SkipsUnset(t *testing.T) {
	fields := Fields(context.Background())
	if len(fields) != 1 || fields[0].Key != "attempt" {
		t.Fatalf("expected only attempt field, got %v", fields)
	}

	fields = Fields(TaskBegin(WithRequest(context.Background(), "req-2", "qna"), "answer"))
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
}
