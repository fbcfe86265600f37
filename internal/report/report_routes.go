package report

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	leaves := r.Group("/leaves")
	leaves.GET("/export", middleware.RBACAuthorize(rbacService, "leave", "hr_confirm"), handler.ExportApproved)
}
