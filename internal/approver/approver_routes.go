package approver

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	approvers := r.Group("/settings/approvers")
	{
		approvers.GET("",
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.List,
		)
		approvers.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "settings", "manage"),
			handler.BulkSave,
		)
	}
}
