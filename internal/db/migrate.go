package db

import (
	"guessgame/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Player{},
		&models.PriceSample{},
		&models.Guess{},
		&models.SystemSetting{},
	)
}
