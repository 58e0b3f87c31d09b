package database

import (
	"github.com/rs/zerolog/log"

	"invoicely-backend/internal/models"
)

// RunMigrations performs all database migrations
func RunMigrations() error {
	db := GetDB()

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.BlacklistedToken{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		return err
	}

	log.Info().Msg("Database migrations completed successfully")
	return nil
}
