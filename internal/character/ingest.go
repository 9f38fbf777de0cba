package character

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CJK统一表意文字基本区
const (
	cjkFirst = '\u4e00'
	cjkLast  = '\u9fff'
)

// IsCJK 判断一个码点是否属于CJK统一表意文字基本区
func IsCJK(r rune) bool {
	return r >= cjkFirst && r <= cjkLast
}

// NormalizeGlyph 去掉首尾空白并做NFC规范化，要求结果恰好是一个字符
func NormalizeGlyph(input string) (string, error) {
	glyph := norm.NFC.String(strings.TrimSpace(input))
	if utf8.RuneCountInString(glyph) != 1 {
		return "", ErrNotSingle
	}
	return glyph, nil
}

// ExtractCJK 从任意文本中按出现顺序提取不重复的汉字
func ExtractCJK(text string) []string {
	text = norm.NFC.String(text)
	seen := make(map[rune]struct{})
	var glyphs []string
	for _, r := range text {
		if !IsCJK(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		glyphs = append(glyphs, string(r))
	}
	return glyphs
}
