package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GeneratePlan handles POST /api/plan: builds a fresh daily plan from all
// incomplete tasks, replacing the previous one.
func (h *Handler) GeneratePlan(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.GenerateDailyPlan(c.Request.Context()))
}

// GetPlan handles GET /api/plan.
func (h *Handler) GetPlan(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	plan, exists := s.DailyPlan()
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plan generated yet"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetInsights handles GET /api/insights: refreshes and returns the insight
// list.
func (h *Handler) GetInsights(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	insights := s.GetAIInsights(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"insights": insights,
		"count":    len(insights),
	})
}
