package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	"ai-task-manager/internal/models"
)

// Open connects to the SQLite database at path and runs migrations.
// glebarez/sqlite is a pure Go driver, so no CGO is required.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
