package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/store"
	"ai-task-manager/internal/validate"
)

// CreateTaskRequest represents the request payload for creating a task from
// free-text input.
type CreateTaskRequest struct {
	Input string `json:"input" binding:"required"`
	UseAI bool   `json:"useAI"`
}

// GetTasks handles GET /api/tasks
// Optional query params: filter (all|pending|completed|today|overdue) and
// sortBy (priority|dueDate|createdAt|category).
func (h *Handler) GetTasks(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	filter := store.TaskFilter(c.DefaultQuery("filter", string(store.FilterAll)))
	sortBy := store.TaskSort(c.Query("sortBy"))

	tasks := s.Filtered(filter, sortBy)
	c.JSON(http.StatusOK, gin.H{
		"tasks":  tasks,
		"count":  len(tasks),
		"filter": filter,
		"sortBy": sortBy,
	})
}

// CreateTask handles POST /api/tasks
// The task appears in the response immediately; persistence and optional AI
// enhancement continue in the background.
func (h *Handler) CreateTask(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.AddTask(c.Request.Context(), req.Input, req.UseAI)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
func (h *Handler) GetTaskByID(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	task, err := s.Task(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id with a partial payload.
func (h *Handler) UpdateTask(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	var patch store.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.UpdateTask(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// ToggleTask handles PATCH /api/tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	task, err := s.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// EnhanceTask handles POST /api/tasks/:id/enhance — manual re-enhancement.
func (h *Handler) EnhanceTask(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	task, err := s.EnhanceTaskWithAI(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := s.DeleteTask(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      id,
	})
}

// BulkImportRequest carries up to 100 candidate records.
type BulkImportRequest struct {
	Tasks []validate.TaskInput `json:"tasks" binding:"required"`
}

// BulkImport handles POST /api/tasks/bulk. Valid records are inserted;
// every rejected record comes back with its reasons.
func (h *Handler) BulkImport(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}

	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, inserted := s.BulkImport(c.Request.Context(), req.Tasks)
	c.JSON(http.StatusOK, gin.H{
		"imported": len(inserted),
		"tasks":    inserted,
		"invalid":  result.Invalid,
	})
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	s, ok := h.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Stats())
}
