package testutil

import (
	"testing"

	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB returns an isolated in-memory database with the full
// schema migrated.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	// A second pool connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&types.Category{},
		&types.PartOfSpeech{},
		&types.DictionaryEntry{},
		&types.ExampleSentence{},
		&types.PublicSubmission{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})
	return gdb
}
