package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"ai-task-manager/internal/middleware"
	"ai-task-manager/internal/models"
)

func timerRouter(h *Handler) *gin.Engine {
	r := testRouter(h)
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/timer/start", h.StartTimer)
	api.POST("/timer/pause", h.PauseTimer)
	api.POST("/timer/resume", h.ResumeTimer)
	api.POST("/timer/stop", h.StopTimer)
	api.GET("/timer", h.GetTimer)
	return r
}

func createTimerTask(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", map[string]any{"input": "deep work"}))
	require.Equal(t, http.StatusCreated, w.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task.ID
}

func timerState(t *testing.T, w *httptest.ResponseRecorder) models.FocusTimerState {
	t.Helper()
	var state models.FocusTimerState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestStartTimer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := timerRouter(h)
	taskID := createTimerTask(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/start", map[string]any{
		"taskId":  taskID,
		"seconds": 600,
	}))
	require.Equal(t, http.StatusOK, w.Code)

	state := timerState(t, w)
	require.Equal(t, taskID, state.TaskID)
	require.True(t, state.Active)
	require.Equal(t, 600, state.TimeLeft)
}

func TestStartTimer_UnknownTask(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := timerRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/start", map[string]any{
		"taskId": "no-such-task",
	}))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartTimer_MissingTaskID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := timerRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/start", map[string]any{}))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimerLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := timerRouter(h)
	taskID := createTimerTask(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/start", map[string]any{"taskId": taskID}))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.DefaultFocusSeconds, timerState(t, w).TimeLeft)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/pause", nil))
	require.False(t, timerState(t, w).Active)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/resume", nil))
	require.True(t, timerState(t, w).Active)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/timer/stop", nil))
	require.Equal(t, models.FocusTimerState{}, timerState(t, w))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/timer", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.FocusTimerState{}, timerState(t, w))
}
