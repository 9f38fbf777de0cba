package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/database"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *character.Repository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "characters.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, character.Migrate(db.Gorm))
	return character.NewRepository(db.Gorm)
}

func TestCommon(t *testing.T) {
	chars := Common()
	assert.Len(t, chars, 100)
	assert.Equal(t, "的", chars[0])
	assert.Equal(t, "本", chars[99])
}

func TestSeedCommonIsIdempotent(t *testing.T) {
	repo := newRepo(t)
	s := New(repo, logger.Discard())
	ctx := t.Context()

	_, err := repo.CreateIfAbsent(ctx, "的")
	require.NoError(t, err)

	n, err := s.SeedCommon(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, n)

	n, err = s.SeedCommon(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, total)
}

func TestApplyDetails(t *testing.T) {
	repo := newRepo(t)
	s := New(repo, logger.Discard())
	ctx := t.Context()
	for _, g := range []string{"学", "人"} {
		_, err := repo.CreateIfAbsent(ctx, g)
		require.NoError(t, err)
	}

	entries, err := LoadDetailsFile("testdata/details.yaml")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "人", entries[1].Character)

	report, err := s.ApplyDetails(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, []string{"鑫"}, report.NotFound)

	xue, err := repo.FindByGlyph(ctx, "学")
	require.NoError(t, err)
	require.NotNil(t, xue.Words)
	assert.Equal(t, "学习\n学校", *xue.Words)
	assert.Nil(t, xue.Sentences)

	ren, err := repo.FindByGlyph(ctx, "人")
	require.NoError(t, err)
	require.NotNil(t, ren.Sentences)
	assert.Equal(t, "人人都要遵守规则。", *ren.Sentences, "首尾空白被去掉")

	missing, err := repo.FindByGlyph(ctx, "鑫")
	require.NoError(t, err)
	assert.Nil(t, missing, "详情不会创建新汉字")
}

func TestLoadDetailsRejectsMultiCharEntries(t *testing.T) {
	_, err := LoadDetailsFile("testdata/bad.yaml")
	assert.ErrorIs(t, err, character.ErrNotSingle)
}

func TestLoadDetailsEmpty(t *testing.T) {
	entries, err := LoadDetails(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBundledDetailsFileParses(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "data", "details.yaml"))
	require.NoError(t, err)
	defer f.Close()

	entries, err := LoadDetails(f)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
	for _, e := range entries {
		assert.NotNil(t, e.Pinyin, e.Character)
	}
}
