package models

import (
	"time"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PriorityRank maps a priority to a sortable rank (urgent first).
func PriorityRank(p TaskPriority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

// DefaultCategory is assigned when a task has no category.
const DefaultCategory = "general"

// StringList is a string slice stored as a JSON column.
type StringList []string

// Task represents a user-owned unit of work.
// Column names are snake_case, JSON fields camelCase; this mapping is part of
// the persistence contract and must round-trip exactly.
type Task struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	Title         string       `json:"title" gorm:"not null"`
	Description   string       `json:"description"`
	Completed     bool         `json:"completed" gorm:"default:false"`
	Priority      TaskPriority `json:"priority" gorm:"default:'medium'"`
	DueDate       string       `json:"dueDate" gorm:"column:due_date"` // "2006-01-02"; empty = unset
	DueTime       string       `json:"dueTime" gorm:"column:due_time"` // "15:04"; empty = unset
	Category      string       `json:"category" gorm:"default:'general'"`
	EstimatedTime string       `json:"estimatedTime" gorm:"column:estimated_time"`
	Subtasks      StringList   `json:"subtasks" gorm:"serializer:json"`
	AIEnhanced    bool         `json:"aiEnhanced" gorm:"column:ai_enhanced"`
	AIModelUsed   string       `json:"aiModelUsed" gorm:"column:ai_model_used"`
	Tags          StringList   `json:"tags" gorm:"serializer:json"`
	UserID        string       `json:"-" gorm:"column:user_id;index"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// DueOn reports whether the task is due exactly on the given day.
func (t Task) DueOn(day time.Time) bool {
	return t.DueDate != "" && t.DueDate == day.Format(DateLayout)
}

// OverdueAt reports whether the task's due date has passed and it is still open.
func (t Task) OverdueAt(day time.Time) bool {
	if t.Completed || t.DueDate == "" {
		return false
	}
	due, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return false
	}
	today, _ := time.Parse(DateLayout, day.Format(DateLayout))
	return due.Before(today)
}
