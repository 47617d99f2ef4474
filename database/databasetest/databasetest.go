// Package databasetest opens throwaway SQLite databases migrated with the
// service schema, for use in tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"storefront-service/database"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.db")
	db, err := database.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), "silent")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}
