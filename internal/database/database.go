package database

import (
	"fmt"
	"log"

	"github.com/wpsadi/AssessKit-sub000/internal/config"
	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError is required: the duplicate-response guard relies on
	// unique-constraint violations surfacing as gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Organizer{},
		&models.Event{},
		&models.Round{},
		&models.Question{},
		&models.AcceptedAnswer{},
		&models.Participant{},
		&models.Session{},
		&models.Response{},
		&models.Score{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
