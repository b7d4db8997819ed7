package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-task-manager/internal/realtime"
	"ai-task-manager/internal/store"
)

// Handler bundles the collaborators the HTTP layer needs. One instance is
// constructed in main and shared across routes.
type Handler struct {
	DB     *gorm.DB
	Stores *store.Manager
	Hub    *realtime.Hub
}

// New constructs a Handler.
func New(db *gorm.DB, stores *store.Manager, hub *realtime.Hub) *Handler {
	return &Handler{DB: db, Stores: stores, Hub: hub}
}

// storeFor resolves the authenticated user's store, writing the error
// response itself when that fails. The bool reports success.
func (h *Handler) storeFor(c *gin.Context) (*store.Store, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return nil, false
	}
	s, err := h.Stores.For(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks"})
		return nil, false
	}
	return s, true
}
