package routes

import (
	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/handlers"
	"ai-task-manager/internal/middleware"
)

// SetupRoutes wires all endpoints onto a gin engine.
func SetupRoutes(h *handlers.Handler) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "AI Task Manager API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", h.GetTasks)
		protectedRoutes.GET("/tasks/:id", h.GetTaskByID)
		protectedRoutes.POST("/tasks", h.CreateTask)
		protectedRoutes.POST("/tasks/bulk", h.BulkImport)
		protectedRoutes.PUT("/tasks/:id", h.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/toggle", h.ToggleTask)
		protectedRoutes.POST("/tasks/:id/enhance", h.EnhanceTask)
		protectedRoutes.DELETE("/tasks/:id", h.DeleteTask)

		// Daily plan and insights
		protectedRoutes.POST("/plan", h.GeneratePlan)
		protectedRoutes.GET("/plan", h.GetPlan)
		protectedRoutes.GET("/insights", h.GetInsights)

		// Focus timer
		protectedRoutes.POST("/timer/start", h.StartTimer)
		protectedRoutes.POST("/timer/pause", h.PauseTimer)
		protectedRoutes.POST("/timer/resume", h.ResumeTimer)
		protectedRoutes.POST("/timer/stop", h.StopTimer)
		protectedRoutes.GET("/timer", h.GetTimer)

		// Dashboard
		protectedRoutes.GET("/stats", h.GetStats)

		// Users endpoint
		protectedRoutes.GET("/users", h.GetAllUsers)
	}

	// Realtime events
	ws := ginRouter.Group("/ws")
	ws.Use(middleware.JWTAuthMiddleware())
	ws.GET("", h.WebSocket)

	return ginRouter
}
