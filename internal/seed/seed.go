// Package seed 负责预置常用汉字，以及从 YAML 文件批量写入汉字详情。
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

//go:embed common.txt
var commonText string

// Common 返回预置的100个常用汉字，按使用频率排序
func Common() []string {
	return character.ExtractCJK(commonText)
}

// Seeder 把预置数据写入汉字仓库
type Seeder struct {
	repo *character.Repository
	log  *slog.Logger
}

func New(repo *character.Repository, log *slog.Logger) *Seeder {
	return &Seeder{repo: repo, log: logger.Module(log, "seed")}
}

// SeedCommon 插入常用汉字，已存在的汉字保持不变。返回新插入的数量。
func (s *Seeder) SeedCommon(ctx context.Context) (int, error) {
	inserted := 0
	err := s.repo.Transaction(ctx, func(tx *character.Repository) error {
		for _, g := range Common() {
			ok, err := tx.CreateIfAbsent(ctx, g)
			if err != nil {
				return err
			}
			if ok {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("无法预置常用汉字: %w", err)
	}
	s.log.Info("预置常用汉字", slog.Int("inserted", inserted))
	return inserted, nil
}

// Entry 是详情文件中的一项
type Entry struct {
	Character  string  `yaml:"character"`
	Pinyin     *string `yaml:"pinyin"`
	Definition *string `yaml:"definition"`
	Words      *string `yaml:"words"`
	Sentences  *string `yaml:"sentences"`
}

// DetailsReport 是写入详情的结果
type DetailsReport struct {
	Updated  int
	NotFound []string // 数据库中不存在的汉字
}

// LoadDetails 解析 YAML 格式的详情列表
func LoadDetails(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("无法解析详情文件: %w", err)
	}
	for i, e := range entries {
		g, err := character.NormalizeGlyph(e.Character)
		if err != nil {
			return nil, fmt.Errorf("第 %d 项 %q: %w", i+1, e.Character, err)
		}
		entries[i].Character = g
	}
	return entries, nil
}

// LoadDetailsFile 读取本地的详情文件
func LoadDetailsFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开详情文件: %w", err)
	}
	defer f.Close()
	return LoadDetails(f)
}

func (e Entry) details() character.Details {
	return character.Details{
		Pinyin:     trimmed(e.Pinyin),
		Definition: trimmed(e.Definition),
		Words:      trimmed(e.Words),
		Sentences:  trimmed(e.Sentences),
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ApplyDetails 按汉字覆盖详情字段，不存在的汉字不会被创建
func (s *Seeder) ApplyDetails(ctx context.Context, entries []Entry) (*DetailsReport, error) {
	report := &DetailsReport{}
	err := s.repo.Transaction(ctx, func(tx *character.Repository) error {
		for _, e := range entries {
			found, err := tx.UpdateDetailsByGlyph(ctx, e.Character, e.details())
			if err != nil {
				return err
			}
			if found {
				report.Updated++
			} else {
				report.NotFound = append(report.NotFound, e.Character)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("无法写入汉字详情: %w", err)
	}
	s.log.Info("写入汉字详情",
		slog.Int("updated", report.Updated),
		slog.Int("not_found", len(report.NotFound)))
	return report, nil
}
