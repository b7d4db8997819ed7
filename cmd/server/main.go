package main

import (
	"context"
	"log"
	"os"
	"time"

	"ai-task-manager/internal/aigateway"
	"ai-task-manager/internal/calendar"
	"ai-task-manager/internal/database"
	"ai-task-manager/internal/handlers"
	"ai-task-manager/internal/realtime"
	"ai-task-manager/internal/routes"
	"ai-task-manager/internal/store"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "ai-task-manager.db"
	}
	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	gateway := aigateway.New(aigateway.DefaultConfig())
	hub := realtime.New()

	// Calendar sync is optional; New returns nil when unconfigured and the
	// store skips a nil collaborator.
	var cal store.CalendarSync
	if c := calendar.New(context.Background(), calendar.ConfigFromEnv()); c != nil {
		cal = c
	}

	stores := store.NewManager(db, gateway, cal, hub)
	handler := handlers.New(db, stores, hub)
	ginRoutes := routes.SetupRoutes(handler)

	// The focus timer counts wall-clock seconds; this ticker is the external
	// interval collaborator driving every store's timer.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			stores.Tick()
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}
	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  POST   /api/tasks/bulk")
	log.Println("  PUT    /api/tasks/:id")
	log.Println("  PATCH  /api/tasks/:id/toggle")
	log.Println("  POST   /api/tasks/:id/enhance")
	log.Println("  DELETE /api/tasks/:id")
	log.Println("  POST   /api/plan")
	log.Println("  GET    /api/insights")
	log.Println("  POST   /api/timer/start")
	log.Println("  GET    /ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
