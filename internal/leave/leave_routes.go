package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts leave endpoints on an authenticated group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	{
		leaves.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetAll,
		)
		leaves.GET("/balance",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.Balance,
		)
		leaves.GET("/entitlement",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.Entitlement,
		)
		leaves.GET("/:id",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetByID,
		)
		leaves.POST("/:id/decision",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "leave", "decide"),
			handler.Decide,
		)
		leaves.POST("/decisions",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "decide"),
			handler.BulkDecide,
		)
		leaves.POST("/hr-confirmation",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "hr_confirm"),
			handler.ConfirmHR,
		)
	}
}
