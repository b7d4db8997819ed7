package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ai-task-manager/internal/models"
	"ai-task-manager/internal/testutil"
	"ai-task-manager/internal/validate"
)

func TestAddTask_OptimisticThenPersisted(t *testing.T) {
	s, _ := newTestStore(t)

	task, err := s.AddTask(context.Background(), "  buy milk  ", false)
	require.NoError(t, err)
	require.Equal(t, "buy milk", task.Title)
	require.Equal(t, models.PriorityMedium, task.Priority)

	// Visible immediately, before any persistence round-trip.
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, task.ID, tasks[0].ID)

	s.Wait()
	var count int64
	require.NoError(t, s.db.Model(&models.Task{}).Where("user_id = ?", "user-1").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAddTask_RejectsEmptyInput(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddTask(context.Background(), "   ", false)
	require.Error(t, err)
	require.Empty(t, s.Tasks())
}

func TestAddTask_ClampsTitle(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.AddTask(context.Background(), strings.Repeat("x", validate.MaxTitleLen+50), false)
	require.NoError(t, err)
	require.Len(t, task.Title, validate.MaxTitleLen)
}

func TestAddTask_WithAIMergesEnhancement(t *testing.T) {
	s, ai := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	ai.parsed = models.ParsedTask{DueTime: "15:00", Tags: []string{"errand"}}
	ai.enhancement = models.TaskEnhancement{
		EnhancedTitle: "Buy groceries for the week",
		Description:   "Milk, eggs, bread",
		Subtasks:      []string{"make list", "go shopping"},
		Priority:      models.PriorityHigh,
		EstimatedTime: "45 minutes",
		Category:      "personal",
		Deadline:      "2026-09-03",
		ModelUsed:     "fast-model",
	}

	task, err := s.AddTask(context.Background(), "buy groceries", true)
	require.NoError(t, err)
	require.Equal(t, enhancingPlaceholder, task.Description)

	s.Wait()
	got, err := s.Task(task.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy groceries for the week", got.Title)
	require.Equal(t, "Milk, eggs, bread", got.Description)
	require.Equal(t, models.PriorityHigh, got.Priority)
	require.Equal(t, "2026-09-03", got.DueDate)
	require.Equal(t, "15:00", got.DueTime)
	require.Equal(t, models.StringList{"errand"}, got.Tags)
	require.True(t, got.AIEnhanced)
	require.Equal(t, "fast-model", got.AIModelUsed)
}

func TestAddTask_PastDueDateClampedToToday(t *testing.T) {
	s, ai := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	ai.parsed = models.ParsedTask{DueDate: "2026-08-15"}

	task, err := s.AddTask(context.Background(), "overdue suggestion", true)
	require.NoError(t, err)
	s.Wait()

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	require.Equal(t, "2026-09-01", got.DueDate, "a suggested date in the past becomes today")
}

func TestAddTask_EnhancementSkipsCompletedTask(t *testing.T) {
	s, ai := newTestStore(t)
	ai.enhanceGate = make(chan struct{})
	ai.enhancement = models.TaskEnhancement{EnhancedTitle: "should not apply"}

	task, err := s.AddTask(context.Background(), "quick win", true)
	require.NoError(t, err)

	_, err = s.ToggleTask(context.Background(), task.ID)
	require.NoError(t, err)
	close(ai.enhanceGate)
	s.Wait()

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	require.Equal(t, "quick win", got.Title)
	require.Empty(t, got.Description, "placeholder is cleared, nothing else merged")
	require.False(t, got.AIEnhanced)
}

func TestClampDueDate(t *testing.T) {
	today := fixedNow("2026-09-01")()
	require.Equal(t, "2026-09-05", clampDueDate("2026-09-05", today))
	require.Equal(t, "2026-09-01", clampDueDate("2026-09-01", today))
	require.Equal(t, "2026-09-01", clampDueDate("2020-01-01", today))
	require.Equal(t, "", clampDueDate("next tuesday", today))
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.AddTask(context.Background(), "draft report", false)
	require.NoError(t, err)

	updated, err := s.UpdateTask(context.Background(), task.ID, TaskPatch{
		Priority: ptr(models.PriorityUrgent),
		DueDate:  ptr("2026-09-10"),
	})
	require.NoError(t, err)
	require.Equal(t, "draft report", updated.Title, "unpatched fields survive")
	require.Equal(t, models.PriorityUrgent, updated.Priority)
	require.Equal(t, "2026-09-10", updated.DueDate)

	s.Wait()
	var stored models.Task
	require.NoError(t, s.db.First(&stored, "id = ?", task.ID).Error)
	require.Equal(t, models.PriorityUrgent, stored.Priority)
}

func TestUpdateTask_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.AddTask(context.Background(), "valid", false)
	require.NoError(t, err)

	_, err = s.UpdateTask(context.Background(), task.ID, TaskPatch{Title: ptr("  ")})
	require.Error(t, err)
	_, err = s.UpdateTask(context.Background(), task.ID, TaskPatch{Priority: ptr(models.TaskPriority("asap"))})
	require.Error(t, err)
	_, err = s.UpdateTask(context.Background(), "missing", TaskPatch{})
	require.True(t, errors.Is(err, ErrTaskNotFound))

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	require.Equal(t, "valid", got.Title)
}

func TestDeleteTask_ScopedToUser(t *testing.T) {
	s, _ := newTestStore(t)
	other := models.Task{ID: "task-other", Title: "not mine", UserID: "user-2"}
	require.NoError(t, s.db.Create(&other).Error)

	task, err := s.AddTask(context.Background(), "mine", false)
	require.NoError(t, err)
	s.Wait()

	require.NoError(t, s.DeleteTask(context.Background(), task.ID))
	require.Empty(t, s.Tasks())
	s.Wait()

	var count int64
	require.NoError(t, s.db.Model(&models.Task{}).Count(&count).Error)
	require.Equal(t, int64(1), count, "the other user's record is untouched")

	require.True(t, errors.Is(s.DeleteTask(context.Background(), task.ID), ErrTaskNotFound))
}

func TestDeleteTask_ClearsMatchingTimer(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.AddTask(context.Background(), "focus target", false)
	require.NoError(t, err)

	s.StartFocusTimer(task.ID, 60)
	require.NoError(t, s.DeleteTask(context.Background(), task.ID))
	require.Equal(t, models.FocusTimerState{}, s.FocusTimer())
	s.Wait()
}

func TestToggleTask_CalendarFailureSwallowed(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	cal := &stubCalendar{err: errors.New("calendar down")}
	s := New(db, "user-1", &stubAssistant{}, cal, nil)

	task, err := s.AddTask(context.Background(), "with deadline", false)
	require.NoError(t, err)
	_, err = s.UpdateTask(context.Background(), task.ID, TaskPatch{DueDate: ptr("2030-01-01")})
	require.NoError(t, err)

	toggled, err := s.ToggleTask(context.Background(), task.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)

	s.Wait()
	require.Equal(t, 1, cal.calls())
}

func TestToggleTask_NoCalendarWithoutDueDate(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	cal := &stubCalendar{}
	s := New(db, "user-1", &stubAssistant{}, cal, nil)

	task, err := s.AddTask(context.Background(), "undated", false)
	require.NoError(t, err)
	_, err = s.ToggleTask(context.Background(), task.ID)
	require.NoError(t, err)
	s.Wait()
	require.Zero(t, cal.calls())
}

func TestEnhanceTaskWithAI(t *testing.T) {
	s, ai := newTestStore(t)
	ai.enhancement = models.TaskEnhancement{
		EnhancedTitle: "Refined title",
		Subtasks:      []string{"step 1"},
	}

	task, err := s.AddTask(context.Background(), "rough note", false)
	require.NoError(t, err)

	updated, err := s.EnhanceTaskWithAI(context.Background(), task.ID)
	require.NoError(t, err)
	require.Equal(t, "Refined title", updated.Title)
	require.True(t, updated.AIEnhanced)
	require.False(t, s.Loading(), "loading flag is cleared once the call returns")
	s.Wait()

	_, err = s.EnhanceTaskWithAI(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrTaskNotFound))
}

func TestBulkImport(t *testing.T) {
	s, _ := newTestStore(t)

	result, inserted := s.BulkImport(context.Background(), []validate.TaskInput{
		{Title: "alpha", Priority: "high"},
		{Title: ""},
		{Title: "beta", DueDate: "not-a-date"},
		{Title: "gamma"},
	})

	require.Len(t, result.Valid, 2)
	require.Len(t, result.Invalid, 2)
	require.Len(t, inserted, 2)
	require.Len(t, s.Tasks(), 2)

	s.Wait()
	var count int64
	require.NoError(t, s.db.Model(&models.Task{}).Where("user_id = ?", "user-1").Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestBroadcastsTaskLifecycle(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	events := &stubEvents{}
	s := New(db, "user-1", &stubAssistant{}, nil, events)

	task, err := s.AddTask(context.Background(), "observable", false)
	require.NoError(t, err)
	_, err = s.ToggleTask(context.Background(), task.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteTask(context.Background(), task.ID))
	s.Wait()

	events.mu.Lock()
	defer events.mu.Unlock()
	require.Len(t, events.messages, 3)
	require.Contains(t, events.messages[0], `"type":"task_created"`)
	require.Contains(t, events.messages[1], `"type":"task_updated"`)
	require.Contains(t, events.messages[2], `"type":"task_deleted"`)
}
