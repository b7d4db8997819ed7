package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartTimerRequest selects the task a focus session runs against.
type StartTimerRequest struct {
	TaskID  string `json:"taskId" binding:"required"`
	Seconds int    `json:"seconds"`
}

// StartTimer handles POST /api/timer/start. Starting over a running session
// replaces it.
func (h *Handler) StartTimer(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	var req StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.Task(req.TaskID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, s.StartFocusTimer(req.TaskID, req.Seconds))
}

// PauseTimer handles POST /api/timer/pause.
func (h *Handler) PauseTimer(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.PauseFocusTimer())
}

// ResumeTimer handles POST /api/timer/resume.
func (h *Handler) ResumeTimer(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.ResumeFocusTimer())
}

// StopTimer handles POST /api/timer/stop.
func (h *Handler) StopTimer(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.StopFocusTimer())
}

// GetTimer handles GET /api/timer.
func (h *Handler) GetTimer(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.FocusTimer())
}
