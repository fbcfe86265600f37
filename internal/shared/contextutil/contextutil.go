package contextutil

import (
	"context"

	"go-leave/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
	principalKey contextKey = "principal"
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithPrincipal stores the caller and, when a request logger is already
// attached, re-attaches it tagged with the caller's identity.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	ctx = context.WithValue(ctx, principalKey, p)
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		ctx = WithLogger(ctx, l.With(principalFields(p)...))
	}
	return ctx
}

// GetPrincipal returns the acting identity and whether one was set.
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// GetUserID is the authenticated user id, or "" on public routes.
func GetUserID(ctx context.Context) string {
	p, _ := GetPrincipal(ctx)
	return p.UserID
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, falling back to defaultLogger and finally to a no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// Fields returns the request metadata worth attaching to a log line.
func Fields(ctx context.Context) []zap.Field {
	fields := []zap.Field{zap.String("request_id", GetRequestID(ctx))}
	if p, ok := GetPrincipal(ctx); ok {
		fields = append(fields, principalFields(p)...)
	}
	return fields
}

func principalFields(p domain.Principal) []zap.Field {
	fields := []zap.Field{zap.String("user_id", p.UserID), zap.String("role", p.Role)}
	if p.EmployeeID != "" {
		fields = append(fields, zap.String("employee_id", p.EmployeeID))
	}
	return fields
}
