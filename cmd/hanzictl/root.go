package main

import (
	"log/slog"
	"os"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/config"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/database"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/spf13/cobra"
)

// app 保存子命令共享的配置和连接
type app struct {
	dbPath string
	cfg    *config.Config
	log    *slog.Logger
	db     *database.DB
}

// open 打开数据库并执行迁移
func (a *app) open() (*database.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Open(a.cfg.Database.Path, a.log)
	if err != nil {
		return nil, err
	}
	if err := character.Migrate(db.Gorm); err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) repository() (*character.Repository, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	return character.NewRepository(db.Gorm), nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func rootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hanzictl",
		Short:         "汉字卡片数据库维护工具",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.Database.Path = a.dbPath
			}
			log, err := logger.New(os.Stderr, logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "数据库文件路径，默认使用配置中的 database.path")

	cmd.AddCommand(
		migrateCommand(a),
		seedCommand(a),
		exportCommand(a),
		importCommand(a),
	)
	return cmd
}
