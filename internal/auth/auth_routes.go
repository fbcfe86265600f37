package auth

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.RefreshToken)
		auth.POST("/logout", handler.Logout)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(handler.tokens.Secret))
		protected.GET("/me", middleware.RateLimitByUser(2, 5), handler.Me)
		protected.POST("/password", middleware.RateLimitByUser(0.2, 3), handler.ChangePassword)
		protected.POST("/register", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Register)
	}
}
