package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate,
// parents first.
func AllModels() []any {
	return []any{
		&Station{},
		&Bike{},
		&Trip{},
		&DailyWeather{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
