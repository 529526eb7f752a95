// Package storetest provides an in-memory sqlite database with every table
// migrated, for tests that need real repositories.
package storetest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewRepositories returns uncached repositories over a fresh database.
func NewRepositories(t *testing.T) (*store.Repositories, *gorm.DB) {
	t.Helper()
	db := NewDB(t)
	return store.NewGormRepositories(db, nil, zap.NewNop()), db
}
