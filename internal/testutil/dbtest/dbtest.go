// Package dbtest opens migrated in-memory sqlite databases for tests above the
// repository layer.
package dbtest

import (
	"testing"

	"crowdlending/internal/adapter/repository/mysql"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database with every table migrated. It is limited to one
// connection, so code running inside a transaction must not query db directly.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(mysql.Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
