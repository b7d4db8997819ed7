package models

// InsightType classifies an advisory insight.
type InsightType string

const (
	InsightProductivity InsightType = "productivity"
	InsightPattern      InsightType = "pattern"
	InsightSuggestion   InsightType = "suggestion"
	InsightWarning      InsightType = "warning"
)

// AIInsight is an ephemeral advisory object; insights are replaced wholesale
// on refresh and never persisted.
type AIInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Actionable  bool        `json:"actionable"`
	Priority    int         `json:"priority"`
}

// ContextSummary is the condensed task-list state handed to the coaching
// operation instead of the raw task list.
type ContextSummary struct {
	Total         int            `json:"total"`
	Completed     int            `json:"completed"`
	Pending       int            `json:"pending"`
	Overdue       int            `json:"overdue"`
	ByCategory    map[string]int `json:"byCategory"`
	CreatedLast7d int            `json:"createdLast7Days"`
}
