package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/models"
)

// UserResponse is the safe public shape of a user record.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GetAllUsers handles GET /api/users (protected).
func (h *Handler) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:       u.ID,
			Username: u.Username,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
