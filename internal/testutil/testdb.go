package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jpcostan/rise-and-move-ios/internal/infra/kvstore"
)

type TestDB struct {
	DB  *gorm.DB
	DSN string
}

// SetupTestDB opens a private in-memory SQLite database with the slot table
// migrated.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := kvstore.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	tdb := &TestDB{
		DB:  db,
		DSN: dsn,
	}

	t.Cleanup(func() {
		tdb.TeardownTestDB(t)
	})

	return tdb
}

func (tdb *TestDB) TeardownTestDB(t *testing.T) {
	t.Helper()

	sqlDB, err := tdb.DB.DB()
	if err != nil {
		t.Logf("failed to get sql.DB: %v", err)

		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Logf("failed to close database: %v", err)
	}
}

func (tdb *TestDB) CleanTable(t *testing.T) {
	t.Helper()

	if err := tdb.DB.Exec("DELETE FROM kv_slots").Error; err != nil {
		t.Fatalf("failed to clean table: %v", err)
	}
}
