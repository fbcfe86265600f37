package auth

import (
	"net/http"
	"strings"

	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
	clientHeader  = "X-Client-Type"
)

type Handler struct {
	service       Service
	tokens        TokenConfig
	secureCookies bool
	logger        *zap.Logger
}

func NewHandler(s Service, tokens TokenConfig, secureCookies bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = defaultAccessTTL
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = defaultRefreshTTL
	}
	return &Handler{service: s, tokens: tokens, secureCookies: secureCookies, logger: l}
}

// isWebClient reports whether tokens should also travel as cookies.
func isWebClient(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader(clientHeader), "WEB")
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeTokens(c *gin.Context, tokens TokenResponse) {
	if isWebClient(c) {
		h.setCookie(c, accessCookie, tokens.AccessToken, int(h.tokens.AccessTTL.Seconds()))
		h.setCookie(c, refreshCookie, tokens.RefreshToken, int(h.tokens.RefreshTTL.Seconds()))
	}
	response.Success(c, http.StatusOK, tokens, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.writeTokens(c, tokens)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var refreshToken string
	if isWebClient(c) {
		cookie, err := c.Cookie(refreshCookie)
		if err != nil || cookie == "" {
			response.FromError(c, apperror.ErrUnauthorized)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.FromError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.writeTokens(c, tokens)
}

func (h *Handler) Me(c *gin.Context) {
	actor := middleware.Principal(c)
	if actor.UserID == "" {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor := middleware.Principal(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), actor.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"changed": true}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		httpErr := response.FromError(c, err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("register user failed", zap.Error(err))
		}
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}
