package store

import (
	"sort"
	"time"

	"ai-task-manager/internal/models"
)

// TaskFilter selects a subset of the task list.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterPending   TaskFilter = "pending"
	FilterCompleted TaskFilter = "completed"
	FilterToday     TaskFilter = "today"
	FilterOverdue   TaskFilter = "overdue"
)

// TaskSort orders a filtered view.
type TaskSort string

const (
	SortByPriority  TaskSort = "priority"
	SortByDueDate   TaskSort = "dueDate"
	SortByCreatedAt TaskSort = "createdAt"
	SortByCategory  TaskSort = "category"
)

// Filtered is a pure derived view: it copies, filters and stably sorts the
// task list without touching the source order. Ties keep insertion order.
func (s *Store) Filtered(filter TaskFilter, sortBy TaskSort) []models.Task {
	s.mu.Lock()
	today := s.now()
	selected := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if matchesFilter(t, filter, today) {
			selected = append(selected, t)
		}
	}
	s.mu.Unlock()

	switch sortBy {
	case SortByPriority:
		sort.SliceStable(selected, func(i, j int) bool {
			return models.PriorityRank(selected[i].Priority) < models.PriorityRank(selected[j].Priority)
		})
	case SortByDueDate:
		sort.SliceStable(selected, func(i, j int) bool {
			// Tasks without a due date sort last.
			di, dj := selected[i].DueDate, selected[j].DueDate
			if di == "" {
				return false
			}
			if dj == "" {
				return true
			}
			return di < dj
		})
	case SortByCreatedAt:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].CreatedAt.Before(selected[j].CreatedAt)
		})
	case SortByCategory:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].Category < selected[j].Category
		})
	}
	return selected
}

func matchesFilter(t models.Task, filter TaskFilter, today time.Time) bool {
	switch filter {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterToday:
		return t.DueOn(today)
	case FilterOverdue:
		return t.OverdueAt(today)
	default:
		return true
	}
}
