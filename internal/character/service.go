package character

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/metrics"
)

// 随机选取时没有可选汉字的提示
const (
	MessageAllMastered  = "恭喜！所有汉字都已掌握"
	MessageNoneMastered = "还没有已掌握的汉字"
)

// BatchResult 是批量添加的统计结果
type BatchResult struct {
	Success int `json:"success"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// Service 实现汉字的增删改查和学习状态机
type Service struct {
	repo    *Repository
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// Option 用于定制 Service
type Option func(*Service)

// WithClock 替换时间来源，主要用于测试
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics 设置业务指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService 创建服务实例
func NewService(repo *Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  logger.Module(log, "character"),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository 返回底层仓库，供导入导出等模块复用
func (s *Service) Repository() *Repository { return s.repo }

// List 返回全部汉字，最新添加的在前
func (s *Service) List(ctx context.Context) ([]Character, error) {
	return s.repo.List(ctx)
}

// Get 返回单个汉字
func (s *Service) Get(ctx context.Context, id uint) (*Character, error) {
	return s.repo.Get(ctx, id)
}

// Add 添加单个汉字，输入必须恰好是一个字符
func (s *Service) Add(ctx context.Context, input string) (*Character, error) {
	glyph, err := NormalizeGlyph(input)
	if err != nil {
		return nil, err
	}
	c := &Character{Glyph: glyph}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("添加汉字", slog.String("character", glyph), slog.Uint64("id", uint64(c.ID)))
	return c, nil
}

// AddBatch 从任意文本中提取汉字并逐个添加，已存在的计为跳过
func (s *Service) AddBatch(ctx context.Context, text string) (*BatchResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyBatch
	}
	glyphs := ExtractCJK(text)
	if len(glyphs) == 0 {
		return nil, ErrNoCJK
	}

	result := &BatchResult{Total: len(glyphs)}
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		for _, g := range glyphs {
			inserted, err := tx.CreateIfAbsent(ctx, g)
			if err != nil {
				return err
			}
			if inserted {
				result.Success++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("批量添加汉字",
		slog.Int("success", result.Success),
		slog.Int("skipped", result.Skipped),
		slog.Int("total", result.Total))
	return result, nil
}

// UpdateDetails 修改汉字的拼音、释义、组词和造句
func (s *Service) UpdateDetails(ctx context.Context, id uint, d Details) (*Character, error) {
	if err := s.repo.UpdateDetails(ctx, id, d); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete 删除汉字及其全部学习记录
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// PickRandom 从未掌握(mastered=false)或已掌握(mastered=true)的汉字中随机选一个。
// 没有可选汉字时返回 nil 和对应的提示信息。
func (s *Service) PickRandom(ctx context.Context, mastered bool) (*Character, string, error) {
	c, err := s.repo.PickRandom(ctx, mastered)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		if mastered {
			return nil, MessageNoneMastered, nil
		}
		return nil, MessageAllMastered, nil
	}
	return c, "", nil
}

// Mark 记录一次认识/不认识的判定并推进学习状态
func (s *Service) Mark(ctx context.Context, id uint, recognized bool) (*Character, error) {
	var (
		updated     *Character
		wasMastered bool
	)
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		c, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		wasMastered = c.IsMastered
		if err := tx.AddRecord(ctx, c.ID, recognized, s.now().UTC()); err != nil {
			return err
		}
		if err := tx.SaveProgress(ctx, c.ID, c.Progress().Mark(recognized)); err != nil {
			return err
		}
		updated, err = tx.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveMark(recognized)
	if !wasMastered && updated.IsMastered {
		s.log.Info("汉字已掌握", slog.String("character", updated.Glyph))
	}
	return updated, nil
}

// Reset 清除汉字的学习进度，不影响历史记录
func (s *Service) Reset(ctx context.Context, id uint) (*Character, error) {
	var updated *Character
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		c, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.SaveProgress(ctx, c.ID, c.Progress().Reset()); err != nil {
			return err
		}
		updated, err = tx.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

