package store

import (
	"context"
	"time"

	"ai-task-manager/internal/models"
	"ai-task-manager/internal/planner"
)

// GenerateDailyPlan collects all incomplete tasks, delegates to the AI
// gateway, and unconditionally post-processes the result so every incomplete
// task is represented in exactly one block. The result overwrites the single
// current plan.
func (s *Store) GenerateDailyPlan(ctx context.Context) models.DailyPlan {
	s.mu.Lock()
	pending := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	prefs := s.planPrefs
	s.mu.Unlock()

	plan := s.ai.GenerateDailyPlan(ctx, pending, prefs)
	plan = planner.EnsureCoverage(plan, pending, prefs)

	s.mu.Lock()
	s.plan = &plan
	s.mu.Unlock()
	return plan
}

// DailyPlan returns the current plan, if one has been generated.
func (s *Store) DailyPlan() (models.DailyPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return models.DailyPlan{}, false
	}
	return *s.plan, true
}

// GetAIInsights summarizes the task list, asks the coaching operation for
// advice, and replaces the insight list wholesale.
func (s *Store) GetAIInsights(ctx context.Context) []models.AIInsight {
	summary := s.contextSummary()
	insights := s.ai.ProvideCoaching(ctx, summary)

	s.mu.Lock()
	s.insights = insights
	s.mu.Unlock()
	return insights
}

// Insights returns the last-generated insight list.
func (s *Store) Insights() []models.AIInsight {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AIInsight, len(s.insights))
	copy(out, s.insights)
	return out
}

// contextSummary condenses the task list into counts by completion,
// category and recency for the coaching prompt.
func (s *Store) contextSummary() models.ContextSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := models.ContextSummary{
		Total:      len(s.tasks),
		ByCategory: make(map[string]int),
	}
	today := s.now()
	weekAgo := today.Add(-7 * 24 * time.Hour)
	for _, t := range s.tasks {
		if t.Completed {
			summary.Completed++
		} else {
			summary.Pending++
		}
		if t.OverdueAt(today) {
			summary.Overdue++
		}
		summary.ByCategory[t.Category]++
		if t.CreatedAt.After(weekAgo) {
			summary.CreatedLast7d++
		}
	}
	return summary
}
