package holiday

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	holidays := r.Group("/settings/holidays")
	{
		holidays.GET("",
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.List,
		)
		holidays.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "settings", "manage"),
			handler.BulkSave,
		)
		holidays.POST("/import",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "settings", "manage"),
			handler.Import,
		)
	}
}
