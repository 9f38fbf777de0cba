package report

import (
	"context"
	"math"
	"time"
)

// DefaultRecentLimit 是未指定数量时返回的最近记录条数
const DefaultRecentLimit = 20

// Service 负责统计和错题库查询
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService 创建服务实例，now 为 nil 时使用 time.Now
func NewService(repo *Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// dayBounds 返回 t 所在本地日期的 [开始, 结束)
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// progressPercent 返回 mastered/total 的百分比，保留两位小数。total 为0时返回0。
func progressPercent(mastered, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(mastered)/float64(total)*100*100) / 100
}

// Stats 汇总学习进度和今日的学习情况
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	c, err := s.repo.counters(ctx)
	if err != nil {
		return nil, err
	}
	from, to := dayBounds(s.now())
	todayCount, err := s.repo.countRecords(ctx, from, to)
	if err != nil {
		return nil, err
	}
	recognized, err := s.repo.recognizedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Total:           c.Total,
		Mastered:        c.Mastered,
		Learning:        c.Learning,
		NotStarted:      c.NotStarted,
		TodayCount:      todayCount,
		TodayRecognized: recognized,
		Progress:        progressPercent(c.Mastered, c.Total),
	}, nil
}

// Recent 返回最近的学习记录，limit 不是正数时使用默认值
func (s *Service) Recent(ctx context.Context, limit int) ([]RecentRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}

// Mistakes 返回错题库
func (s *Service) Mistakes(ctx context.Context) ([]Mistake, error) {
	return s.repo.Mistakes(ctx)
}
