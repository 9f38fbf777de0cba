package character

import "github.com/SlpAus/hanzi-flashcard-backend/internal/platform/apperr"

var (
	ErrNotFound   = apperr.NotFound("汉字不存在")
	ErrDuplicate  = apperr.Validation("该汉字已存在")
	ErrNotSingle  = apperr.Validation("请输入单个汉字")
	ErrEmptyBatch = apperr.Validation("请输入汉字")
	ErrNoCJK      = apperr.Validation("未找到有效的汉字")
)

var (
	ErrBadRequest  = apperr.Validation("请求格式错误")
	ErrBadMastered = apperr.Validation("mastered 参数必须是布尔值")
)
