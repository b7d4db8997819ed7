// Package validate implements the bulk-import input contract: sanitize each
// candidate record, clamp lengths, and partition the batch into valid and
// invalid entries. A record is never dropped without an error string saying
// why.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"ai-task-manager/internal/models"
)

// MaxBatchSize caps how many records one bulk import processes; anything
// beyond it is ignored entirely (not reported as invalid).
const MaxBatchSize = 100

// Field length limits applied during sanitization.
const (
	MaxTitleLen       = 500
	MaxDescriptionLen = 2000
	MaxTags           = 20
	MaxTagLen         = 50
)

// TaskInput is one candidate record in a bulk import.
type TaskInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      string   `json:"priority"`
	DueDate       string   `json:"dueDate"`
	DueTime       string   `json:"dueTime"`
	Category      string   `json:"category"`
	EstimatedTime string   `json:"estimatedTime"`
	Tags          []string `json:"tags"`
	Subtasks      []string `json:"subtasks"`
}

// InvalidRecord pairs a rejected record with human-readable reasons.
type InvalidRecord struct {
	Record TaskInput `json:"record"`
	Errors []string  `json:"errors"`
}

// BulkResult partitions a batch. Valid entries are already sanitized.
type BulkResult struct {
	Valid   []TaskInput     `json:"valid"`
	Invalid []InvalidRecord `json:"invalid"`
}

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	scriptPattern   = regexp.MustCompile(`(?i)javascript:|on\w+\s*=`)
	sqlPattern      = regexp.MustCompile(`(?i)(\b(union|select|insert|update|delete|drop)\b\s+(all\s+)?(from|into|table|\*))|(--)|(;\s*drop\b)`)
	dueDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dueTimePattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	controlPattern  = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
	collapsePattern = regexp.MustCompile(`\s{2,}`)
)

// sanitizeText strips markup, script and injection patterns and clamps the
// result to max characters.
func sanitizeText(s string, max int) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = scriptPattern.ReplaceAllString(s, "")
	s = sqlPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, "")
	s = collapsePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// ValidateBulkTaskInput sanitizes up to MaxBatchSize records and partitions
// them. Conservation holds: len(Valid)+len(Invalid) == min(len(records), 100).
func ValidateBulkTaskInput(records []TaskInput) BulkResult {
	if len(records) > MaxBatchSize {
		records = records[:MaxBatchSize]
	}

	result := BulkResult{
		Valid:   make([]TaskInput, 0, len(records)),
		Invalid: make([]InvalidRecord, 0),
	}

	for _, rec := range records {
		original := rec
		var errs []string

		rec.Title = sanitizeText(rec.Title, MaxTitleLen)
		if rec.Title == "" {
			errs = append(errs, "title is required and must contain printable text")
		}
		rec.Description = sanitizeText(rec.Description, MaxDescriptionLen)
		rec.Category = sanitizeText(rec.Category, MaxTagLen)
		if rec.Category == "" {
			rec.Category = models.DefaultCategory
		}
		rec.EstimatedTime = sanitizeText(rec.EstimatedTime, MaxTagLen)

		if rec.Priority == "" {
			rec.Priority = string(models.PriorityMedium)
		} else if !models.ValidPriority(models.TaskPriority(rec.Priority)) {
			errs = append(errs, fmt.Sprintf("priority %q is not one of low/medium/high/urgent", rec.Priority))
		}

		if rec.DueDate != "" && !dueDatePattern.MatchString(rec.DueDate) {
			errs = append(errs, fmt.Sprintf("due date %q is not in YYYY-MM-DD format", rec.DueDate))
		}
		if rec.DueTime != "" && !dueTimePattern.MatchString(rec.DueTime) {
			errs = append(errs, fmt.Sprintf("due time %q is not in HH:MM format", rec.DueTime))
		}

		rec.Tags = sanitizeList(rec.Tags, MaxTags, MaxTagLen)
		rec.Subtasks = sanitizeList(rec.Subtasks, MaxTags, MaxTitleLen)

		if len(errs) > 0 {
			result.Invalid = append(result.Invalid, InvalidRecord{Record: original, Errors: errs})
			continue
		}
		result.Valid = append(result.Valid, rec)
	}
	return result
}

// sanitizeList sanitizes each element, drops empties, and clamps both the
// element length and the list length.
func sanitizeList(items []string, maxItems, maxLen int) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		clean := sanitizeText(it, maxLen)
		if clean == "" {
			continue
		}
		out = append(out, clean)
		if len(out) == maxItems {
			break
		}
	}
	return out
}
