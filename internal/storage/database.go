package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/M1tsumi/arc-duels/internal/game"
	"github.com/M1tsumi/arc-duels/internal/logging"
)

// OpenAndMigrate opens the sqlite database and keeps the schema current via
// AutoMigrate. The parent directory is created when missing so a fresh
// deployment starts without manual setup.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir %s: %w", dir, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.DuelRecord{}, &game.Ranking{}); err != nil {
		return nil, err
	}
	logging.Info("database ready", logging.Fields{"dsn": dataSourceName})
	return db, nil
}
