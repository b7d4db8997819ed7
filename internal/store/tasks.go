package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-task-manager/internal/models"
	"ai-task-manager/internal/validate"
)

// enhancingPlaceholder is the transient description shown while an AI
// enhancement is in flight; cleared if enhancement cannot improve the task.
const enhancingPlaceholder = "Enhancing with AI..."

// AddTask creates a task from raw input. The task is visible in the store
// before persistence or enhancement run; both happen on detached goroutines.
// When useAI is set, natural-language parsing and enhancement results are
// merged into the task once ready; enhancement failure is never fatal to
// creation.
func (s *Store) AddTask(ctx context.Context, input string, useAI bool) (models.Task, error) {
	title := strings.TrimSpace(input)
	if title == "" {
		return models.Task{}, errors.New("store: task title must not be empty")
	}
	if len(title) > validate.MaxTitleLen {
		title = title[:validate.MaxTitleLen]
	}

	task := models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Priority:  models.PriorityMedium,
		Category:  models.DefaultCategory,
		UserID:    s.userID,
		CreatedAt: s.now(),
	}
	if useAI {
		task.Description = enhancingPlaceholder
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.spawn(func() { s.persist(task) })
	s.broadcast("task_created", task.ID)

	if useAI {
		id, raw := task.ID, title
		s.spawn(func() { s.applyEnhancement(context.Background(), id, raw) })
	}
	return task, nil
}

// applyEnhancement runs NLP parsing and enhancement for raw input and merges
// the results into task id. Completed tasks are left alone.
func (s *Store) applyEnhancement(ctx context.Context, id, raw string) {
	parsed := s.ai.ParseNaturalLanguage(ctx, raw)
	enh := s.ai.EnhanceTask(ctx, raw, false)

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	t := &s.tasks[i]
	if t.Completed {
		if t.Description == enhancingPlaceholder {
			t.Description = ""
		}
		s.mu.Unlock()
		return
	}

	today := s.now()
	if parsed.DueDate != "" {
		t.DueDate = clampDueDate(parsed.DueDate, today)
	}
	if parsed.DueTime != "" {
		t.DueTime = parsed.DueTime
	}
	if len(parsed.Tags) > 0 {
		t.Tags = parsed.Tags
	}

	t.Title = enh.EnhancedTitle
	t.Description = enh.Description
	t.Priority = enh.Priority
	t.Category = enh.Category
	t.EstimatedTime = enh.EstimatedTime
	t.Subtasks = enh.Subtasks
	if t.DueDate == "" && enh.Deadline != "" {
		t.DueDate = clampDueDate(enh.Deadline, today)
	}
	t.AIEnhanced = true
	t.AIModelUsed = enh.ModelUsed

	updated := *t
	s.mu.Unlock()

	s.persist(updated)
	s.broadcast("task_updated", id)
}

// clampDueDate never lets an AI-suggested date land in the past: anything
// earlier than today becomes today. Unparsable dates are discarded.
func clampDueDate(date string, today time.Time) string {
	due, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return ""
	}
	floor := today.Format(models.DateLayout)
	if due.Format(models.DateLayout) < floor {
		return floor
	}
	return date
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Completed     *bool                `json:"completed"`
	Priority      *models.TaskPriority `json:"priority"`
	DueDate       *string              `json:"dueDate"`
	DueTime       *string              `json:"dueTime"`
	Category      *string              `json:"category"`
	EstimatedTime *string              `json:"estimatedTime"`
	Subtasks      *[]string            `json:"subtasks"`
	Tags          *[]string            `json:"tags"`
}

// UpdateTask merges a partial edit into the in-memory task, then persists
// the full record. Last write wins at whole-record granularity; there is no
// version token guarding against a racing enhancement merge.
func (s *Store) UpdateTask(ctx context.Context, id string, patch TaskPatch) (models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, errors.New("store: task title must not be empty")
	}
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return models.Task{}, errors.New("store: invalid priority value")
	}

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, ErrTaskNotFound
	}
	t := &s.tasks[i]
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.DueTime != nil {
		t.DueTime = *patch.DueTime
	}
	if patch.Category != nil {
		t.Category = *patch.Category
		if t.Category == "" {
			t.Category = models.DefaultCategory
		}
	}
	if patch.EstimatedTime != nil {
		t.EstimatedTime = *patch.EstimatedTime
	}
	if patch.Subtasks != nil {
		t.Subtasks = *patch.Subtasks
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	updated := *t
	s.mu.Unlock()

	s.spawn(func() { s.persist(updated) })
	s.broadcast("task_updated", id)
	return updated, nil
}

// DeleteTask removes the task from memory immediately and issues a
// user-scoped backend delete. A backend failure is logged but the in-memory
// removal stands.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.timer.TaskID == id {
		s.timer = models.FocusTimerState{}
	}
	s.mu.Unlock()

	s.spawn(func() {
		if s.db == nil {
			return
		}
		if err := s.db.Where("id = ? AND user_id = ?", id, s.userID).
			Delete(&models.Task{}).Error; err != nil {
			log.Printf("store: delete of task %s failed: %v", id, err)
		}
	})
	s.broadcast("task_deleted", id)
	return nil
}

// ToggleTask flips completion and persists. Tasks with a due date also get a
// best-effort calendar event; a sync failure is logged and never surfaced.
func (s *Store) ToggleTask(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, ErrTaskNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	updated := s.tasks[i]
	s.mu.Unlock()

	s.spawn(func() { s.persist(updated) })
	s.broadcast("task_updated", id)

	if updated.DueDate != "" && s.calendar != nil {
		s.spawn(func() {
			if err := s.calendar.CreateEvent(context.Background(), updated); err != nil {
				log.Printf("store: calendar sync for task %s failed: %v", id, err)
			}
		})
	}
	return updated, nil
}

// EnhanceTaskWithAI re-runs enhancement for an existing task on demand. The
// store-wide loading flag is set for the duration as a UI affordance;
// enhancements for different tasks may still overlap.
func (s *Store) EnhanceTaskWithAI(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, ErrTaskNotFound
	}
	raw := s.tasks[i].Title
	s.loading = true
	s.mu.Unlock()

	s.applyEnhancement(ctx, id, raw)

	s.mu.Lock()
	s.loading = false
	i = s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, ErrTaskNotFound
	}
	updated := s.tasks[i]
	s.mu.Unlock()
	return updated, nil
}

// BulkImport validates up to 100 candidate records and inserts the valid
// partition. The returned result reports every rejected record with its
// reasons; no record disappears silently.
func (s *Store) BulkImport(ctx context.Context, records []validate.TaskInput) (validate.BulkResult, []models.Task) {
	result := validate.ValidateBulkTaskInput(records)

	inserted := make([]models.Task, 0, len(result.Valid))
	now := s.now()
	s.mu.Lock()
	for _, rec := range result.Valid {
		task := models.Task{
			ID:            uuid.NewString(),
			Title:         rec.Title,
			Description:   rec.Description,
			Priority:      models.TaskPriority(rec.Priority),
			DueDate:       rec.DueDate,
			DueTime:       rec.DueTime,
			Category:      rec.Category,
			EstimatedTime: rec.EstimatedTime,
			Subtasks:      rec.Subtasks,
			Tags:          rec.Tags,
			UserID:        s.userID,
			CreatedAt:     now,
		}
		s.tasks = append(s.tasks, task)
		inserted = append(inserted, task)
	}
	s.mu.Unlock()

	for _, task := range inserted {
		task := task
		s.spawn(func() { s.persist(task) })
		s.broadcast("task_created", task.ID)
	}
	return result, inserted
}
