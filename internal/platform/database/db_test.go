package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFileAndEnablesForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "characters.db")

	db, err := Open(path, nil)
	require.NoError(t, err)
	assert.True(t, db.Created)

	var fk int
	require.NoError(t, db.SQL.Get(&fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)
	require.NoError(t, db.Ping())
	require.NoError(t, db.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	assert.False(t, reopened.Created, "已有文件不应被视为新建")
}
