package report

import (
	"net/http"
	"net/url"
	"strconv"

	reporterrors "go-leave/internal/report/errors"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

// ExportApproved GET /leaves/export?year=2025
func (h *Handler) ExportApproved(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.FromError(c, reporterrors.ErrInvalidYear)
			return
		}
		year = v
	}

	buf, filename, err := h.service.ExportApproved(c.Request.Context(), year)
	if err != nil {
		httpErr := response.FromError(c, err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("leave export failed", zap.Error(err))
		}
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
