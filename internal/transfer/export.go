package transfer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType 是 xlsx 文件的 MIME 类型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Export 把全部汉字按汉字顺序写成一个 xlsx 文件
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	chars, err := s.repo.ListByGlyph(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetName)

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return 0, fmt.Errorf("无法写入表头: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, style)
	}

	for i, c := range chars {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := []any{
			c.Glyph,
			deref(c.Pinyin),
			deref(c.Definition),
			deref(c.Words),
			deref(c.Sentences),
			c.RecognitionCount,
			formatMastered(c.IsMastered),
			formatTime(c.CreatedAt),
			formatTime(c.UpdatedAt),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return 0, fmt.Errorf("无法写入第 %d 行: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "B", "E", 24)
	_ = f.SetColWidth(SheetName, "H", "I", 20)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("无法生成导出文件: %w", err)
	}
	s.log.Info("导出汉字", "count", len(chars))
	return len(chars), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(timeLayout)
}
