package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
		&model.Flashcard{},
		&model.FlashcardProgress{},
	))
	return db
}

func createTestWithQuestions(t *testing.T, db *gorm.DB, title string, n int) *model.Test {
	t.Helper()
	test := &model.Test{Title: title, Kind: model.TestKindQuiz}
	for i := n; i >= 1; i-- {
		test.Questions = append(test.Questions, model.Question{
			Prompt:        "prompt",
			Options:       []string{"A", "B"},
			CorrectAnswer: "A",
			Section:       "general",
			OrderInTest:   i,
		})
	}
	require.NoError(t, NewTestRepository(db).Create(t.Context(), test))
	return test
}
