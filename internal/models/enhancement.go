package models

// TaskEnhancement is the fully-populated result of an AI task enhancement.
// It is never persisted on its own; the store merges it into a Task.
// Gateway fallbacks guarantee every field carries a usable value, so merge
// code never has to handle a partial shape.
type TaskEnhancement struct {
	OriginalTask  string       `json:"originalTask"`
	EnhancedTitle string       `json:"enhancedTitle"`
	Description   string       `json:"description"`
	Subtasks      []string     `json:"subtasks"`
	Priority      TaskPriority `json:"priority"`
	EstimatedTime string       `json:"estimatedTime"`
	Category      string       `json:"category"`
	Deadline      string       `json:"deadline,omitempty"`
	Dependencies  []string     `json:"dependencies,omitempty"`

	// ModelUsed records which model produced the enhancement; empty for the
	// deterministic fallback.
	ModelUsed string `json:"-"`
}

// ParsedTask is the result of natural-language parsing of raw task input.
type ParsedTask struct {
	Title    string       `json:"title"`
	DueDate  string       `json:"dueDate,omitempty"`
	DueTime  string       `json:"dueTime,omitempty"`
	Priority TaskPriority `json:"priority"`
	Tags     []string     `json:"tags,omitempty"`
}
