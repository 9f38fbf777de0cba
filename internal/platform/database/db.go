package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// slowQueryThreshold 超过该时长的SQL会以WARN级别记录
const slowQueryThreshold = 200 * time.Millisecond

// DB 持有同一个连接池上的GORM句柄和sqlx句柄。
// 每个请求从池中获取连接，用完即归还，应用层不再额外加锁。
type DB struct {
	Gorm *gorm.DB
	SQL  *sqlx.DB
	// Created 表示数据库文件是本次启动新建的
	Created bool
}

// Open 打开(必要时创建)SQLite数据库文件并开启外键约束
func Open(path string, log *slog.Logger) (*DB, error) {
	created := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		created = true
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("无法创建数据目录: %w", err)
			}
		}
	} else if err != nil {
		return nil, fmt.Errorf("无法访问数据库文件: %w", err)
	}

	dsn := path + "?_foreign_keys=on"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.NewGormAdapter(logger.Module(log, "database"), slowQueryThreshold),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取底层连接池: %w", err)
	}

	return &DB{
		Gorm:    gdb,
		SQL:     sqlx.NewDb(sqlDB, "sqlite3"),
		Created: created,
	}, nil
}

// Close 关闭连接池
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

// Ping 用于健康检查
func (d *DB) Ping() error {
	return d.SQL.Ping()
}
