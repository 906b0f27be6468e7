package repository

import (
	"fmt"
	"os"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	// Build connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	// TranslateError is required so unique-constraint violations surface as
	// gorm.ErrDuplicatedKey; the marker repositories (favorites,
	// participants, proposals) rely on that for duplicate detection. The
	// view checkpoints do not: their inserts run inside a transaction and
	// absorb conflicts with ON CONFLICT DO NOTHING instead.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventParticipant{},
		&models.EventView{},
		&models.EventFavorite{},
		&models.Job{},
		&models.Proposal{},
		&models.JobView{},
		&models.JobFavorite{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
