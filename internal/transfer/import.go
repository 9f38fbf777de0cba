package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/character"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/apperr"
	"github.com/xuri/excelize/v2"
)

// MaxReportedErrors 是导入结果中最多返回的错误信息条数
const MaxReportedErrors = 10

var (
	ErrNoFile      = apperr.FileFormat("请选择要导入的文件", nil)
	ErrUnsupported = apperr.FileFormat("仅支持 .xlsx 和 .csv 文件", nil)
)

// Result 是一次导入的汇总
type Result struct {
	SuccessCount int      `json:"success_count"` // 新增
	UpdatedCount int      `json:"updated_count"`
	SkippedCount int      `json:"skipped_count"` // 汉字为空的行
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}

func (r *Result) fail(line int, err error) {
	r.ErrorCount++
	if len(r.Errors) < MaxReportedErrors {
		r.Errors = append(r.Errors, fmt.Sprintf("第 %d 行: %s", line, apperr.Message(err)))
	}
}

// Format 是支持导入的文件格式
type Format int

const (
	FormatXLSX Format = iota
	FormatCSV
)

// FormatOf 根据文件扩展名判断格式
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, ErrUnsupported
	}
}

// readRows 读取全部行，包括表头
func readRows(r io.Reader, format Format) ([][]string, error) {
	if format == FormatCSV {
		return readCSV(r)
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.FileFormat("无法读取 xlsx 文件", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.FileFormat("文件中没有工作表", nil)
	}
	sheet := sheets[0]
	for _, name := range sheets {
		if name == SheetName {
			sheet = name
			break
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.FileFormat("无法读取工作表", err)
	}
	return rows, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("无法读取上传的文件: %w", err)
	}
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.FileFormat("无法解析 csv 文件", err)
	}
	return rows, nil
}

// row 是解析后的一行数据
type row struct {
	glyph    string
	details  character.Details
	progress character.Progress
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return strings.TrimSpace(cells[i])
	}
	return ""
}

func optional(cells []string, i int) *string {
	if v := cell(cells, i); v != "" {
		return &v
	}
	return nil
}

var errBadCount = apperr.Validation("认识次数必须是整数")

// parseRow 解析一行，汉字为空时返回 (nil, nil)
func parseRow(cells []string) (*row, error) {
	raw := cell(cells, colGlyph)
	if raw == "" {
		return nil, nil
	}
	glyph, err := character.NormalizeGlyph(raw)
	if err != nil {
		return nil, err
	}

	count := 0
	if v := cell(cells, colCount); v != "" {
		if count, err = strconv.Atoi(v); err != nil {
			return nil, errBadCount
		}
	}

	return &row{
		glyph: glyph,
		details: character.Details{
			Pinyin:     optional(cells, colPinyin),
			Definition: optional(cells, colDefinition),
			Words:      optional(cells, colWords),
			Sentences:  optional(cells, colSentences),
		},
		progress: character.Progress{
			RecognitionCount: count,
			IsMastered:       parseMastered(cell(cells, colMastered)),
		}.Clamp(),
	}, nil
}

// upsert 写入一行，返回是否是新增
func upsert(ctx context.Context, repo *character.Repository, r *row) (bool, error) {
	existing, err := repo.FindByGlyph(ctx, r.glyph)
	if err != nil {
		return false, err
	}
	c := existing
	if c == nil {
		c = &character.Character{Glyph: r.glyph}
	}
	c.Pinyin = r.details.Pinyin
	c.Definition = r.details.Definition
	c.Words = r.details.Words
	c.Sentences = r.details.Sentences
	c.RecognitionCount = r.progress.RecognitionCount
	c.IsMastered = r.progress.IsMastered

	if existing == nil {
		return true, repo.Create(ctx, c)
	}
	return false, repo.Save(ctx, c)
}

// Import 逐行导入:汉字已存在时覆盖全部可变字段，否则新增。
// 单行失败只回滚该行并计入错误，其余的行在最后一起提交。
func (s *Service) Import(ctx context.Context, r io.Reader, format Format) (*Result, error) {
	rows, err := readRows(r, format)
	if err != nil {
		return nil, err
	}

	res := &Result{Errors: []string{}}
	err = s.repo.Transaction(ctx, func(tx *character.Repository) error {
		for i, cells := range rows {
			if i == 0 {
				continue // 表头
			}
			line := i + 1

			parsed, err := parseRow(cells)
			if err != nil {
				res.fail(line, err)
				continue
			}
			if parsed == nil {
				res.SkippedCount++
				continue
			}

			sp := "import_row_" + strconv.Itoa(line)
			if err := tx.SavePoint(sp); err != nil {
				return err
			}
			created, err := upsert(ctx, tx, parsed)
			if err != nil {
				if rbErr := tx.RollbackTo(sp); rbErr != nil {
					return errors.Join(err, rbErr)
				}
				res.fail(line, err)
				continue
			}
			if created {
				res.SuccessCount++
			} else {
				res.UpdatedCount++
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("导入失败", "error", err)
		return nil, fmt.Errorf("导入失败: %w", err)
	}

	res.Message = fmt.Sprintf("导入完成：新增 %d 个，更新 %d 个，跳过 %d 个，失败 %d 个",
		res.SuccessCount, res.UpdatedCount, res.SkippedCount, res.ErrorCount)
	s.metrics.ObserveImport(res.SuccessCount, res.UpdatedCount, res.SkippedCount, res.ErrorCount)
	s.log.Info("导入汉字",
		"created", res.SuccessCount,
		"updated", res.UpdatedCount,
		"skipped", res.SkippedCount,
		"failed", res.ErrorCount)
	return res, nil
}
