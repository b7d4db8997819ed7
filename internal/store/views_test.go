package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ai-task-manager/internal/models"
)

func seedViewTasks(t *testing.T, s *Store) map[string]string {
	t.Helper()
	ids := map[string]string{}
	add := func(key, title string, patch TaskPatch) {
		task, err := s.AddTask(context.Background(), title, false)
		require.NoError(t, err)
		if patch != (TaskPatch{}) {
			_, err = s.UpdateTask(context.Background(), task.ID, patch)
			require.NoError(t, err)
		}
		ids[key] = task.ID
	}

	add("low", "low prio", TaskPatch{Priority: ptr(models.PriorityLow)})
	add("urgent", "urgent prio", TaskPatch{Priority: ptr(models.PriorityUrgent)})
	add("doneHigh", "done high", TaskPatch{Priority: ptr(models.PriorityHigh), Completed: ptr(true)})
	add("today", "due today", TaskPatch{DueDate: ptr("2026-09-01")})
	add("overdue", "past due", TaskPatch{DueDate: ptr("2026-08-20")})
	s.Wait()
	return ids
}

func TestFiltered_PendingByPriority(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	ids := seedViewTasks(t, s)

	got := s.Filtered(FilterPending, SortByPriority)

	require.Len(t, got, 4, "completed tasks are excluded")
	require.Equal(t, ids["urgent"], got[0].ID)
	require.Equal(t, ids["low"], got[len(got)-1].ID)
	for _, task := range got {
		require.False(t, task.Completed)
	}
}

func TestFiltered_DoesNotMutateSource(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	seedViewTasks(t, s)

	before := s.Tasks()
	_ = s.Filtered(FilterAll, SortByPriority)
	_ = s.Filtered(FilterOverdue, SortByDueDate)
	after := s.Tasks()

	require.Equal(t, before, after, "views never reorder the underlying list")
}

func TestFiltered_TodayAndOverdue(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	ids := seedViewTasks(t, s)

	today := s.Filtered(FilterToday, SortByCreatedAt)
	require.Len(t, today, 1)
	require.Equal(t, ids["today"], today[0].ID)

	overdue := s.Filtered(FilterOverdue, SortByCreatedAt)
	require.Len(t, overdue, 1)
	require.Equal(t, ids["overdue"], overdue[0].ID)
}

func TestFiltered_DueDateSortsEmptyLast(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	ids := seedViewTasks(t, s)

	got := s.Filtered(FilterAll, SortByDueDate)
	require.Len(t, got, 5)
	require.Equal(t, ids["overdue"], got[0].ID)
	require.Equal(t, ids["today"], got[1].ID)
	for _, task := range got[2:] {
		require.Empty(t, task.DueDate, "undated tasks sort to the end")
	}
}

func TestFiltered_Completed(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))
	ids := seedViewTasks(t, s)

	got := s.Filtered(FilterCompleted, SortByCreatedAt)
	require.Len(t, got, 1)
	require.Equal(t, ids["doneHigh"], got[0].ID)
}
