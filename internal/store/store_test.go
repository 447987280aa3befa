package store

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/toomanyjoshes/terminalchat/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database, migrated with the
// full schema. A single connection keeps SQLite happy under the concurrent
// tests; real serialization is the store's job via its key locks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Message{},
		&models.UserBlock{},
		&models.Attachment{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func newTestStores(t *testing.T) *Stores {
	t.Helper()
	return New(newTestDB(t), 0)
}

func newTestStoresTTL(t *testing.T, ttl time.Duration) *Stores {
	t.Helper()
	return New(newTestDB(t), ttl)
}
