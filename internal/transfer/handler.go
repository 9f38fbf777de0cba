package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/apperr"
	"github.com/SlpAus/hanzi-flashcard-backend/internal/platform/logger"
	"github.com/gin-gonic/gin"
)

// Handler 提供导出下载和导入上传两个接口
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger.Module(log, "transfer")}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/characters/export", h.Export)
	rg.POST("/characters/import", h.Import)
}

// Export 生成 xlsx 文件并作为附件下载
func (h *Handler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.svc.Export(c.Request.Context(), &buf); err != nil {
		apperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	name := FileName(h.svc.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, ContentType, buf.Bytes())
}

// Import 处理 multipart 表单中名为 file 的上传文件
func (h *Handler) Import(c *gin.Context) {
	log := logger.FromContext(c, h.log)

	fh, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			log.Warn("无法读取上传的表单", slog.Any("error", err))
		}
		apperr.Respond(c, log, ErrNoFile)
		return
	}
	format, err := FormatOf(fh.Filename)
	if err != nil {
		apperr.Respond(c, log, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		apperr.Respond(c, log, apperr.FileFormat("无法读取上传的文件", err))
		return
	}
	defer f.Close()

	res, err := h.svc.Import(c.Request.Context(), f, format)
	if err != nil {
		apperr.Respond(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
