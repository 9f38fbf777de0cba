package transfer

import (
	"log/slog"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/metrics"
)

// Service 在汉字仓库之上实现导入导出
type Service struct {
	repo    *character.Repository
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// NewService 创建服务实例，m 可以为 nil
func NewService(repo *character.Repository, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		log:     logger.Module(log, "transfer"),
		now:     time.Now,
	}
}
