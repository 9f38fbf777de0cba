// Package apperr 定义了业务错误的分类，以及分类到HTTP状态码的映射。
package apperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Kind 是错误的类别
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindFileFormat
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not-found"
	case KindFileFormat:
		return "file-format"
	default:
		return "internal"
	}
}

// Error 携带类别和面向用户的提示信息
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is 按类别比较，使 errors.Is(err, apperr.NotFound("")) 成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }

// FileFormat 表示上传文件不受支持或已损坏
func FileFormat(msg string, err error) *Error {
	return &Error{Kind: KindFileFormat, Message: msg, Err: err}
}

// KindOf 返回错误的类别。存储层的唯一约束冲突视为校验错误。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindValidation
	}
	return KindInternal
}

// Status 返回错误对应的HTTP状态码
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindFileFormat:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

const internalMessage = "服务器内部错误"

// Message 返回可以展示给用户的信息，内部错误不暴露细节
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "数据已存在"
	}
	return internalMessage
}

// Respond 把错误写成 {"error": "..."} 响应，内部错误会记录日志
func Respond(c *gin.Context, log *slog.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("请求处理出错", slog.String("path", c.FullPath()), slog.Any("error", err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": Message(err)})
}
