// Package startup 打开数据库并完成迁移和首次启动时的数据预置。
package startup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/config"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/database"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/seed"
)

// InitializeApplication 是应用启动时执行的总入口。
// 数据库文件是新建的并且开启了 seedOnCreate 时，会预置常用汉字。
func InitializeApplication(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*database.DB, error) {
	log = logger.Module(log, "startup")

	db, err := database.Open(cfg.Path, log)
	if err != nil {
		return nil, err
	}
	if err := character.Migrate(db.Gorm); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	if db.Created && cfg.SeedOnCreate {
		n, err := seed.New(character.NewRepository(db.Gorm), log).SeedCommon(ctx)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("数据库初始化完成", slog.String("path", cfg.Path), slog.Int("seeded", n))
	}
	return db, nil
}
