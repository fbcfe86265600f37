package leaveright

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	rights := r.Group("/settings/leave-rights")
	{
		rights.GET("",
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.GetAll,
		)
		rights.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "settings", "manage"),
			handler.BulkSave,
		)
	}
}
