// Package store is the reactive state container for one user's session: the
// task list, the current daily plan, insights and the focus timer. All
// mutation goes through action methods; mutations apply optimistically in
// memory first, then persist asynchronously. Persistence failures are logged
// and never rolled back.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"ai-task-manager/internal/models"
)

// ErrTaskNotFound is returned by actions addressing an unknown task id.
var ErrTaskNotFound = errors.New("store: task not found")

// Assistant is the AI gateway contract the store depends on. Implementations
// never fail; they degrade to deterministic fallbacks internally.
type Assistant interface {
	EnhanceTask(ctx context.Context, raw string, background bool) models.TaskEnhancement
	ParseNaturalLanguage(ctx context.Context, input string) models.ParsedTask
	GenerateDailyPlan(ctx context.Context, tasks []models.Task, prefs models.PlanPreferences) models.DailyPlan
	ProvideCoaching(ctx context.Context, summary models.ContextSummary) []models.AIInsight
}

// CalendarSync creates a calendar event for a task with a due date.
// Failures are swallowed by the store.
type CalendarSync interface {
	CreateEvent(ctx context.Context, task models.Task) error
}

// Broadcaster publishes task lifecycle events to connected clients.
type Broadcaster interface {
	Broadcast(userID string, message []byte)
}

// Store holds one user's session state. Construct one per user (or per
// test); there is no package-level instance.
type Store struct {
	mu sync.Mutex

	db       *gorm.DB
	ai       Assistant
	calendar CalendarSync
	events   Broadcaster
	userID   string

	tasks    []models.Task
	plan     *models.DailyPlan
	insights []models.AIInsight
	timer    models.FocusTimerState
	loading  bool

	planPrefs models.PlanPreferences

	now func() time.Time
	wg  sync.WaitGroup
}

// New constructs a store for userID. calendar and events may be nil.
func New(db *gorm.DB, userID string, ai Assistant, calendar CalendarSync, events Broadcaster) *Store {
	return &Store{
		db:       db,
		ai:       ai,
		calendar: calendar,
		events:   events,
		userID:   userID,
		now:      time.Now,
	}
}

// SetNow overrides the store clock; tests use it to pin "today".
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetPlanPreferences configures daily-plan generation for this session.
func (s *Store) SetPlanPreferences(prefs models.PlanPreferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planPrefs = prefs
}

// Wait blocks until all in-flight background persistence and enhancement
// work has settled. Tests and shutdown draining use it.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Loading reports whether a manual enhancement is in flight. UI affordance
// only; it is not a concurrency lock.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// spawn runs f on a tracked goroutine.
func (s *Store) spawn(f func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		f()
	}()
}

// index returns the position of id in the task list, or -1. Caller holds mu.
func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist upserts a task record; failure is logged, never rolled back.
func (s *Store) persist(task models.Task) {
	if s.db == nil {
		return
	}
	if err := s.db.Save(&task).Error; err != nil {
		log.Printf("store: persist of task %s failed: %v", task.ID, err)
	}
}

// broadcast publishes a task lifecycle event.
func (s *Store) broadcast(eventType, taskID string) {
	if s.events == nil {
		return
	}
	payload := []byte(`{"type":"` + eventType + `","taskId":"` + taskID + `","userId":"` + s.userID + `"}`)
	s.events.Broadcast(s.userID, payload)
}

// Sync replaces the in-memory task list from the persistence collaborator.
// Reconciliation is always an explicit pull; nothing pushes invalidations
// into the store.
func (s *Store) Sync(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", s.userID).
		Order("created_at asc").
		Find(&tasks).Error; err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Tasks returns a copy of the task list in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns one task by id.
func (s *Store) Task(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return s.tasks[i], nil
}

// Stats summarizes the in-memory list for the dashboard endpoint.
func (s *Store) Stats() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := map[string]int{
		"total":     len(s.tasks),
		"completed": 0,
		"pending":   0,
		"overdue":   0,
	}
	today := s.now()
	for _, t := range s.tasks {
		if t.Completed {
			stats["completed"]++
		} else {
			stats["pending"]++
		}
		if t.OverdueAt(today) {
			stats["overdue"]++
		}
	}
	return stats
}
