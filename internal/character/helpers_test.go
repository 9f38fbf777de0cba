package character

import (
	"path/filepath"
	"testing"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/database"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "characters.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Gorm))
	return db
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	db := openTestDB(t)
	return NewService(NewRepository(db.Gorm), logger.Discard(), opts...)
}
