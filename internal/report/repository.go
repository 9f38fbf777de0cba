package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Repository 直接用SQL查询统计数据，和GORM共用同一个连接池
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type counters struct {
	Total      int `db:"total"`
	Mastered   int `db:"mastered"`
	Learning   int `db:"learning"`
	NotStarted int `db:"not_started"`
}

const countersQuery = `
SELECT
	COUNT(*) AS total,
	COALESCE(SUM(CASE WHEN is_mastered = 1 THEN 1 ELSE 0 END), 0) AS mastered,
	COALESCE(SUM(CASE WHEN is_mastered = 0 AND recognition_count > 0 THEN 1 ELSE 0 END), 0) AS learning,
	COALESCE(SUM(CASE WHEN recognition_count = 0 THEN 1 ELSE 0 END), 0) AS not_started
FROM characters`

func (r *Repository) counters(ctx context.Context) (counters, error) {
	var c counters
	if err := r.db.GetContext(ctx, &c, countersQuery); err != nil {
		return c, fmt.Errorf("无法统计汉字数量: %w", err)
	}
	return c, nil
}

// countRecords 统计 [from, to) 内的学习记录数
func (r *Repository) countRecords(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM learning_records WHERE recorded_at >= ? AND recorded_at < ?`,
		from.UTC(), to.UTC())
	if err != nil {
		return 0, fmt.Errorf("无法统计学习记录: %w", err)
	}
	return n, nil
}

// recognizedBetween 返回 [from, to) 内被标记为认识的汉字，按最近一次认识的时间倒序
func (r *Repository) recognizedBetween(ctx context.Context, from, to time.Time) ([]string, error) {
	glyphs := []string{}
	err := r.db.SelectContext(ctx, &glyphs, `
SELECT c.character
FROM learning_records lr
JOIN characters c ON lr.character_id = c.id
WHERE lr.recognized = 1 AND lr.recorded_at >= ? AND lr.recorded_at < ?
GROUP BY c.id
ORDER BY MAX(lr.recorded_at) DESC, c.id DESC`,
		from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("无法查询今日认识的汉字: %w", err)
	}
	return glyphs, nil
}

// Recent 返回最近的 limit 条学习记录
func (r *Repository) Recent(ctx context.Context, limit int) ([]RecentRecord, error) {
	records := []RecentRecord{}
	err := r.db.SelectContext(ctx, &records, `
SELECT lr.id, lr.recognized, lr.recorded_at, c.character
FROM learning_records lr
JOIN characters c ON lr.character_id = c.id
ORDER BY lr.recorded_at DESC, lr.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("无法查询最近的学习记录: %w", err)
	}
	return records, nil
}

type mistakeRow struct {
	Mistake
	LastMistakeRaw string `db:"last_mistake_time"`
}

// 未掌握、有过答错、并且从来没有答对过的汉字
const mistakesQuery = `
SELECT
	c.id, c.character, c.recognition_count, c.is_mastered,
	c.pinyin, c.definition, c.words, c.sentences,
	COUNT(CASE WHEN lr.recognized = 0 THEN 1 END) AS mistake_count,
	MAX(lr.recorded_at) AS last_mistake_time
FROM characters c
JOIN learning_records lr ON lr.character_id = c.id
WHERE c.is_mastered = 0
AND c.id NOT IN (SELECT character_id FROM learning_records WHERE recognized = 1)
GROUP BY c.id
HAVING mistake_count > 0
ORDER BY last_mistake_time DESC, c.id DESC`

// Mistakes 返回错题库，最近答错的在前
func (r *Repository) Mistakes(ctx context.Context) ([]Mistake, error) {
	var rows []mistakeRow
	if err := r.db.SelectContext(ctx, &rows, mistakesQuery); err != nil {
		return nil, fmt.Errorf("无法查询错题库: %w", err)
	}
	mistakes := make([]Mistake, 0, len(rows))
	for _, row := range rows {
		t, err := parseTimestamp(row.LastMistakeRaw)
		if err != nil {
			return nil, err
		}
		row.Mistake.LastMistakeTime = t
		mistakes = append(mistakes, row.Mistake)
	}
	return mistakes, nil
}

// parseTimestamp 解析聚合函数返回的时间文本。
// MAX() 的结果没有列类型，驱动不会自动转换成 time.Time。
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析时间 %q", s)
}
