package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Identity maps a Telegram account (the installation) to the opaque
// anonymous identity used against the backend. One row per
// installation, written once and never updated.
type Identity struct {
	InstallationID int64  `gorm:"primaryKey"`
	UserID         string `gorm:"uniqueIndex;not null"`
	CreatedAt      time.Time
}

// NewSQLiteDB opens (or creates) the local identity database under the
// given data directory. This is the only durable client-side state.
func NewSQLiteDB(dataDir string) (*gorm.DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, "identity.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open identity database: %w", err)
	}

	if err := db.AutoMigrate(&Identity{}); err != nil {
		return nil, fmt.Errorf("failed to migrate identity database: %w", err)
	}

	return db, nil
}
