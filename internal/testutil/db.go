// Package testutil поднимает sqlite в памяти со схемой сервиса для тестов.
package testutil

import (
	"testing"

	"streamflix/internal/infrastructure/database"
	"streamflix/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenDialector(sqlite.Open(database.SQLiteDSN(":memory:")), logger.Discard(), false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// Каждое соединение к :memory: - отдельная база
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
