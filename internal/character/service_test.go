package character

import (
	"errors"
	"testing"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAddAndDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	c, err := svc.Add(ctx, " 学 ")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "学", c.Glyph)
	assert.Zero(t, c.RecognitionCount)
	assert.False(t, c.IsMastered)

	_, err = svc.Add(ctx, "学")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 400, apperr.Status(err))

	_, err = svc.Add(ctx, "学习")
	assert.ErrorIs(t, err, ErrNotSingle)
}

func TestAddBatch(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	_, err := svc.Add(ctx, "好")
	require.NoError(t, err)

	res, err := svc.AddBatch(ctx, "你好你好abc好")
	require.NoError(t, err)
	assert.Equal(t, &BatchResult{Success: 1, Skipped: 1, Total: 2}, res)

	chars, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, "你", chars[0].Glyph, "最新添加的排在最前")

	_, err = svc.AddBatch(ctx, "  　 ")
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = svc.AddBatch(ctx, "abc 123")
	assert.ErrorIs(t, err, ErrNoCJK)
}

func TestMarkAsymmetricMastery(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	c, err := svc.Add(ctx, "水")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		c, err = svc.Mark(ctx, c.ID, true)
		require.NoError(t, err)
		assert.Equal(t, i, c.RecognitionCount)
	}
	assert.True(t, c.IsMastered)

	c, err = svc.Mark(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Equal(t, MasteryThreshold, c.RecognitionCount)

	c, err = svc.Mark(ctx, c.ID, false)
	require.NoError(t, err)
	assert.True(t, c.IsMastered)
	assert.Equal(t, 0, c.RecognitionCount)

	var records int64
	require.NoError(t, svc.Repository().db.Model(&LearningRecord{}).Where("character_id = ?", c.ID).Count(&records).Error)
	assert.EqualValues(t, 5, records)
}

func TestMarkRecordsClockTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 30, 0, 0, time.FixedZone("CST", 8*3600))
	svc := newTestService(t, WithClock(func() time.Time { return at }))
	ctx := t.Context()

	c, err := svc.Add(ctx, "火")
	require.NoError(t, err)
	_, err = svc.Mark(ctx, c.ID, true)
	require.NoError(t, err)

	var rec LearningRecord
	require.NoError(t, svc.Repository().db.Where("character_id = ?", c.ID).Take(&rec).Error)
	assert.True(t, rec.RecordedAt.Equal(at))
	assert.True(t, rec.Recognized)
}

func TestMarkAndResetUnknownCharacter(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	_, err := svc.Mark(ctx, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 404, apperr.Status(err))

	_, err = svc.Reset(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetKeepsHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	c, err := svc.Add(ctx, "山")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.Mark(ctx, c.ID, true)
		require.NoError(t, err)
	}

	c, err = svc.Reset(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{}, c.Progress())

	var records int64
	require.NoError(t, svc.Repository().db.Model(&LearningRecord{}).Count(&records).Error)
	assert.EqualValues(t, 3, records)
}

func TestDeleteRemovesRecords(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	c, err := svc.Add(ctx, "木")
	require.NoError(t, err)
	other, err := svc.Add(ctx, "林")
	require.NoError(t, err)
	for _, id := range []uint{c.ID, c.ID, other.ID} {
		_, err = svc.Mark(ctx, id, false)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, c.ID))

	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var orphans, remaining int64
	db := svc.Repository().db
	require.NoError(t, db.Model(&LearningRecord{}).Where("character_id = ?", c.ID).Count(&orphans).Error)
	require.NoError(t, db.Model(&LearningRecord{}).Count(&remaining).Error)
	assert.Zero(t, orphans)
	assert.EqualValues(t, 1, remaining)
}

func TestForeignKeyRejectsOrphanRecord(t *testing.T) {
	svc := newTestService(t)
	err := svc.Repository().AddRecord(t.Context(), 12345, true, time.Now().UTC())
	assert.Error(t, err)
}

func TestPickRandomPools(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	c, msg, err := svc.PickRandom(ctx, false)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, MessageAllMastered, msg)

	a, err := svc.Add(ctx, "日")
	require.NoError(t, err)
	b, err := svc.Add(ctx, "月")
	require.NoError(t, err)

	_, msg, err = svc.PickRandom(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, MessageNoneMastered, msg)

	for i := 0; i < 3; i++ {
		_, err = svc.Mark(ctx, a.ID, true)
		require.NoError(t, err)
	}

	for i := 0; i < 10; i++ {
		c, _, err = svc.PickRandom(ctx, true)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, a.ID, c.ID)

		c, _, err = svc.PickRandom(ctx, false)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, b.ID, c.ID)
	}
}

func TestUpdateDetails(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	c, err := svc.Add(ctx, "人")
	require.NoError(t, err)

	c, err = svc.UpdateDetails(ctx, c.ID, Details{Pinyin: strPtr("rén"), Words: strPtr("人民\n大人")})
	require.NoError(t, err)
	require.NotNil(t, c.Pinyin)
	assert.Equal(t, "rén", *c.Pinyin)
	assert.Nil(t, c.Definition)

	c, err = svc.UpdateDetails(ctx, c.ID, Details{Definition: strPtr("人类")})
	require.NoError(t, err)
	assert.Nil(t, c.Pinyin, "缺少的字段会被清空")
	require.NotNil(t, c.Definition)
	assert.Equal(t, "人类", *c.Definition)

	_, err = svc.UpdateDetails(ctx, 4242, Details{})
	assert.True(t, errors.Is(err, ErrNotFound))
}
