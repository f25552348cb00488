package taskcontext

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRequestID    KeyContext = "request_id"
	keyTask         KeyContext = "task"
	keyAttempt      KeyContext = "attempt"
	keyTaskStart    KeyContext = "task_start_time"
	keyCapabilityID KeyContext = "capability"
)

// TaskMetadata holds metadata for one model-backed task execution
type TaskMetadata struct {
	RequestID  string
	Capability string
	Task       string
	Attempt    int
	StartTime  time.Time
}

// WithRequest tags ctx with the inbound request id and the capability serving it
func WithRequest(ctx context.Context, requestID, capability string) context.Context {
	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyCapabilityID, capability)
	return ctx
}

// TaskBegin derives a context for one extraction task
func TaskBegin(parentCtx context.Context, task string) context.Context {
	ctx := context.WithValue(parentCtx, keyTask, task)
	ctx = context.WithValue(ctx, keyAttempt, 1)
	ctx = context.WithValue(ctx, keyTaskStart, time.Now())
	return ctx
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// GetCapability extracts the serving capability from context
func GetCapability(ctx context.Context) string {
	capability, _ := ctx.Value(keyCapabilityID).(string)
	return capability
}

// GetTask extracts task name from context
func GetTask(ctx context.Context) string {
	task, _ := ctx.Value(keyTask).(string)
	return task
}

// GetAttempt extracts current attempt number (1-based) from context
func GetAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyAttempt).(int)
	if !ok {
		return 1
	}
	return attempt
}

// SetAttempt updates attempt number in context
func SetAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyAttempt, attempt)
}

// GetTaskStartTime extracts task start time from context
func GetTaskStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyTaskStart).(time.Time)
	return startTime, ok
}

// GetTaskMetadata extracts all task metadata from context
func GetTaskMetadata(ctx context.Context) *TaskMetadata {
	startTime, _ := GetTaskStartTime(ctx)

	return &TaskMetadata{
		RequestID:  GetRequestID(ctx),
		Capability: GetCapability(ctx),
		Task:       GetTask(ctx),
		Attempt:    GetAttempt(ctx),
		StartTime:  startTime,
	}
}

// Fields returns the metadata as zap fields, skipping unset values
func Fields(ctx context.Context) []zap.Field {
	md := GetTaskMetadata(ctx)
	fields := make([]zap.Field, 0, 4)
	if md.RequestID != "" {
		fields = append(fields, zap.String("request_id", md.RequestID))
	}
	if md.Capability != "" {
		fields = append(fields, zap.String("capability", md.Capability))
	}
	if md.Task != "" {
		fields = append(fields, zap.String("task", md.Task))
	}
	fields = append(fields, zap.Int("attempt", md.Attempt))
	return fields
}
