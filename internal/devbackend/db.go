package devbackend

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres when databaseURL is set and falls back to a
// local sqlite file otherwise, then migrates the schema.
func Open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if databaseURL != "" {
		dial = postgres.Open(databaseURL)
	} else {
		dial = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Admin{}, &Category{}, &FoodItem{}, &Order{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
