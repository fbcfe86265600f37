package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (s *stubEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	s.got = req
	return s.allowed, s.err
}

func serveWithRole(role string, svc middleware.RBACService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leaves/decisions", func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}, middleware.RBACAuthorize(svc, "leave", "decide"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/decisions", nil))
	return w
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubEnforcer{allowed: true}
		w := serveWithRole(domain.RoleApprover, svc)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: domain.RoleApprover, Resource: "leave", Action: "decide"}, svc.got)
	})

	t.Run("negative denied", func(t *testing.T) {
		w := serveWithRole(domain.RoleEmployee, &stubEnforcer{})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "leave:decide")
	})

	t.Run("negative no role", func(t *testing.T) {
		w := serveWithRole("", &stubEnforcer{allowed: true})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative enforcer error", func(t *testing.T) {
		w := serveWithRole(domain.RoleHR, &stubEnforcer{err: errors.New("policy broken")})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
