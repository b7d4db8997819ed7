package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ai-task-manager/internal/models"
	"ai-task-manager/internal/testutil"
)

// stubAssistant is a canned Assistant. An optional gate channel holds
// EnhanceTask until the test releases it.
type stubAssistant struct {
	mu           sync.Mutex
	enhancement  models.TaskEnhancement
	parsed       models.ParsedTask
	plan         models.DailyPlan
	insights     []models.AIInsight
	enhanceGate  chan struct{}
	enhanceCalls int
}

func (a *stubAssistant) EnhanceTask(ctx context.Context, raw string, background bool) models.TaskEnhancement {
	if a.enhanceGate != nil {
		<-a.enhanceGate
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enhanceCalls++
	enh := a.enhancement
	if enh.EnhancedTitle == "" {
		enh.EnhancedTitle = raw
	}
	if enh.Priority == "" {
		enh.Priority = models.PriorityMedium
	}
	if enh.Category == "" {
		enh.Category = models.DefaultCategory
	}
	enh.OriginalTask = raw
	return enh
}

func (a *stubAssistant) ParseNaturalLanguage(ctx context.Context, input string) models.ParsedTask {
	a.mu.Lock()
	defer a.mu.Unlock()
	parsed := a.parsed
	if parsed.Title == "" {
		parsed.Title = input
	}
	if parsed.Priority == "" {
		parsed.Priority = models.PriorityMedium
	}
	return parsed
}

func (a *stubAssistant) GenerateDailyPlan(ctx context.Context, tasks []models.Task, prefs models.PlanPreferences) models.DailyPlan {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plan
}

func (a *stubAssistant) ProvideCoaching(ctx context.Context, summary models.ContextSummary) []models.AIInsight {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.insights
}

func (a *stubAssistant) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enhanceCalls
}

// stubCalendar records CreateEvent calls and optionally fails them.
type stubCalendar struct {
	mu    sync.Mutex
	err   error
	tasks []models.Task
}

func (c *stubCalendar) CreateEvent(ctx context.Context, task models.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, task)
	return c.err
}

func (c *stubCalendar) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// stubEvents captures broadcast payloads.
type stubEvents struct {
	mu       sync.Mutex
	messages []string
}

func (e *stubEvents) Broadcast(userID string, message []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, string(message))
}

func newTestStore(t *testing.T) (*Store, *stubAssistant) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	ai := &stubAssistant{}
	return New(db, "user-1", ai, nil, nil), ai
}

func fixedNow(date string) func() time.Time {
	day, _ := time.Parse(models.DateLayout, date)
	return func() time.Time { return day }
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetNow(fixedNow("2026-09-01"))

	_, err := s.AddTask(context.Background(), "open", false)
	require.NoError(t, err)
	done, err := s.AddTask(context.Background(), "done", false)
	require.NoError(t, err)
	_, err = s.ToggleTask(context.Background(), done.ID)
	require.NoError(t, err)

	late, err := s.AddTask(context.Background(), "late", false)
	require.NoError(t, err)
	_, err = s.UpdateTask(context.Background(), late.ID, TaskPatch{DueDate: ptr("2026-08-20")})
	require.NoError(t, err)
	s.Wait()

	stats := s.Stats()
	require.Equal(t, 3, stats["total"])
	require.Equal(t, 1, stats["completed"])
	require.Equal(t, 2, stats["pending"])
	require.Equal(t, 1, stats["overdue"])
}

func TestSync_ReloadsFromDatabase(t *testing.T) {
	s, _ := newTestStore(t)

	added, err := s.AddTask(context.Background(), "survives restart", false)
	require.NoError(t, err)
	s.Wait()

	fresh := New(s.db, "user-1", s.ai, nil, nil)
	require.NoError(t, fresh.Sync(context.Background()))
	tasks := fresh.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, added.ID, tasks[0].ID)
}

func ptr[T any](v T) *T { return &v }
