package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const secret = "middleware-test-secret-0123"

func sign(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func newAuthRouter(seen *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		*seen = middleware.Principal(c)
		if p, ok := contextutil.GetPrincipal(c.Request.Context()); ok && p != *seen {
			c.Status(http.StatusTeapot)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("success bearer token", func(t *testing.T) {
		var seen domain.Principal
		token := sign(t, jwt.MapClaims{
			"user_id": "u-1", "employee_id": "e-1", "role": "approver",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		newAuthRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.Principal{UserID: "u-1", EmployeeID: "e-1", Role: domain.RoleApprover}, seen)
	})

	t.Run("success cookie defaults role", func(t *testing.T) {
		var seen domain.Principal
		token := sign(t, jwt.MapClaims{"user_id": "u-2", "exp": time.Now().Add(time.Minute).Unix()})
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()

		newAuthRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.RoleEmployee, seen.Role)
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
		code  string
	}{
		{"negative missing token", func(t *testing.T) string { return "" }, "UNAUTHORIZED"},
		{"negative expired", func(t *testing.T) string {
			return sign(t, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Minute).Unix()})
		}, "TOKEN_EXPIRED"},
		{"negative refresh token", func(t *testing.T) string {
			return sign(t, jwt.MapClaims{"user_id": "u-1", "token_type": "refresh", "exp": time.Now().Add(time.Minute).Unix()})
		}, "INVALID_TOKEN"},
		{"negative missing user id", func(t *testing.T) string {
			return sign(t, jwt.MapClaims{"role": "HR", "exp": time.Now().Add(time.Minute).Unix()})
		}, "INVALID_TOKEN"},
		{"negative wrong secret", func(t *testing.T) string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u-1"}).SignedString([]byte("other-secret"))
			return tok
		}, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen domain.Principal
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tok := tt.token(t); tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
			w := httptest.NewRecorder()

			newAuthRouter(&seen).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}
