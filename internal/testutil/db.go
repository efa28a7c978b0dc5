// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/roomfinder/service-rooms/internal/platform/database"
	"github.com/roomfinder/service-rooms/internal/repository"
)

// NewDB opens a private in-memory SQLite database with every table migrated and
// foreign keys enforced. The pool is pinned to one connection, so transactions
// run one at a time and the memory database lives as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(zap.NewNop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
