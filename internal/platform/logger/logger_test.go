package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewRejectsUnknownOptions(t *testing.T) {
	_, err := New(nil, Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(nil, Options{Format: "xml"})
	assert.Error(t, err)
}

func TestModuleAddsAttribute(t *testing.T) {
	buf := &bytes.Buffer{}
	root, err := New(buf, Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	Module(root, "character").Info("hello")
	assert.Contains(t, buf.String(), `"module":"character"`)
}

func TestGormAdapterTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	root, err := New(buf, Options{Level: "debug"})
	require.NoError(t, err)
	a := NewGormAdapter(root, 50*time.Millisecond)

	sql := func() (string, int64) { return "SELECT 1", 1 }

	a.Trace(t.Context(), time.Now(), sql, nil)
	assert.Contains(t, buf.String(), "level=DEBUG")

	buf.Reset()
	a.Trace(t.Context(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "level=WARN", "未找到记录不算查询错误")

	buf.Reset()
	a.Trace(t.Context(), time.Now(), sql, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	a.Trace(t.Context(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "慢查询")
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := &bytes.Buffer{}
	l := slog.New(slog.NewTextHandler(buf, nil))

	r := gin.New()
	r.Use(RequestLogger(l))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "status=204")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
