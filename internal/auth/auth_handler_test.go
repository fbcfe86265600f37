package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/auth"
	autherrors "go-leave/internal/auth/errors"
	authMock "go-leave/internal/auth/mock"
	"go-leave/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	reqBody := auth.LoginRequest{Email: "test@example.com", Password: "password123"}
	body, _ := json.Marshal(reqBody)
	tokens := auth.TokenResponse{
		User:         auth.AuthResponse{ID: "user-1", Email: "test@example.com", Role: "EMPLOYEE"},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}

	t.Run("success web client sets cookies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := authMock.NewMockService(ctrl)
		router := setupAuthRouter()
		router.POST("/login", auth.NewHandler(mockService, testTokens, false).Login)

		mockService.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).Return(tokens, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		names := map[string]string{}
		for _, c := range w.Result().Cookies() {
			names[c.Name] = c.Value
		}
		assert.Equal(t, "access-token", names["access_token"])
		assert.Equal(t, "refresh-token", names["refresh_token"])
	})

	t.Run("success api client has no cookies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := authMock.NewMockService(ctrl)
		router := setupAuthRouter()
		router.POST("/login", auth.NewHandler(mockService, testTokens, false).Login)

		mockService.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).Return(tokens, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		assert.Contains(t, w.Body.String(), `"access_token":"access-token"`)
	})

	t.Run("negative invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := authMock.NewMockService(ctrl)
		router := setupAuthRouter()
		router.POST("/login", auth.NewHandler(mockService, testTokens, false).Login)

		mockService.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(auth.TokenResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := setupAuthRouter()
		router.POST("/login", auth.NewHandler(authMock.NewMockService(ctrl), testTokens, false).Login)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"bad"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := authMock.NewMockService(ctrl)
		router := setupAuthRouter()
		router.GET("/me", func(c *gin.Context) {
			c.Set("principal", domain.Principal{UserID: "user-1", Role: domain.RoleHR})
			c.Next()
		}, auth.NewHandler(mockService, testTokens, false).Me)

		mockService.EXPECT().GetMe(gomock.Any(), "user-1").Return(&auth.AuthResponse{ID: "user-1", Role: "HR"}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative anonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := setupAuthRouter()
		router.GET("/me", auth.NewHandler(authMock.NewMockService(ctrl), testTokens, false).Me)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := setupAuthRouter()
	router.POST("/logout", auth.NewHandler(authMock.NewMockService(ctrl), testTokens, true).Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.True(t, c.Secure)
	}
}
