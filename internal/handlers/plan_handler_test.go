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

func planRouter(h *Handler) *gin.Engine {
	r := testRouter(h)
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.GET("/plan", h.GetPlan)
	api.GET("/insights", h.GetInsights)
	return r
}

func TestGetPlan_BeforeGeneration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := planRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/plan", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGeneratePlanThenGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := planRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", map[string]any{"input": "plan me"}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/plan", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var generated models.DailyPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))
	require.Len(t, generated.Blocks, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/plan", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var current models.DailyPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	require.Equal(t, generated, current)
}

func TestGetInsights(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := planRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/insights", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Insights []models.AIInsight `json:"insights"`
		Count    int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "stub insight", resp.Insights[0].Title)
}
