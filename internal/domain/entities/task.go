package entities

// ExtractionTask names one analytical operation performed by the model
type ExtractionTask string

const (
	TaskSummary     ExtractionTask = "summary"      // plain text
	TaskDecisions   ExtractionTask = "decisions"    // bulleted list
	TaskActionItems ExtractionTask = "action_items" // markdown list with owners
	TaskSentiment   ExtractionTask = "sentiment"    // label + justification
	TaskAnswer      ExtractionTask = "answer"       // plain text
)

// InsightTasks lists the tasks that make up an InsightBundle, in bundle order
var InsightTasks = []ExtractionTask{
	TaskSummary,
	TaskDecisions,
	TaskActionItems,
	TaskSentiment,
}

// IsValid checks if the task is a known extraction task
func (t ExtractionTask) IsValid() bool {
	switch t {
	case TaskSummary, TaskDecisions, TaskActionItems, TaskSentiment, TaskAnswer:
		return true
	}
	return false
}

// String returns the wire name of the task
func (t ExtractionTask) String() string {
	return string(t)
}
