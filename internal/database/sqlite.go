package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookline/reader/backend/internal/models"
)

// Initialize opens the SQLite database at dbPath and migrates the
// translation schema. The handle is returned to the caller for explicit
// wiring; nothing holds it globally.
func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	err = db.AutoMigrate(&models.ChapterTranslation{}, &models.TranslationPreference{})
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
