package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty in-memory database
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

type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[string][][]byte)}
}

func (p *recordingPublisher) Publish(_ context.Context, queueName string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[queueName] = append(p.messages[queueName], body)
	return nil
}

func (p *recordingPublisher) count(queueName string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[queueName])
}

func (p *recordingPublisher) decode(t *testing.T, queueName string, i int, v interface{}) {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.Greater(t, len(p.messages[queueName]), i)
	require.NoError(t, json.Unmarshal(p.messages[queueName][i], v))
}
