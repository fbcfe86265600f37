package approver

import (
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approver.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approver.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkSave(c *gin.Context) {
	var req BulkSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http bulk save approvers validation failed", zap.Error(err))
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.BulkSave(c.Request.Context(), req)
	if err != nil {
		httpErr := response.FromError(c, err)
		h.logger.Warn("bulk save approvers failed", zap.String("code", httpErr.Code))
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
