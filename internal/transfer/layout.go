// Package transfer 负责汉字表的电子表格导出和导入。
package transfer

import (
	"strings"
	"time"
)

// SheetName 是导出文件中工作表的名称
const SheetName = "汉字列表"

// Header 是导出文件的表头，导入时按相同的列顺序读取
var Header = []string{"汉字", "拼音", "释义", "组词", "造句", "认识次数", "已掌握", "创建时间", "更新时间"}

const (
	colGlyph = iota
	colPinyin
	colDefinition
	colWords
	colSentences
	colCount
	colMastered
	colCreatedAt
	colUpdatedAt
)

const (
	masteredYes = "是"
	masteredNo  = "否"

	timeLayout = "2006-01-02 15:04:05"
)

// truthy 是导入时视为"已掌握"的写法，比较时忽略大小写
var truthy = map[string]struct{}{
	"是":    {},
	"已掌握":  {},
	"yes":  {},
	"y":    {},
	"true": {},
	"1":    {},
}

func parseMastered(s string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func formatMastered(v bool) string {
	if v {
		return masteredYes
	}
	return masteredNo
}

// FileName 返回带时间戳的导出文件名
func FileName(now time.Time) string {
	return "characters_" + now.Format("20060102_150405") + ".xlsx"
}
