package contextutil_test

import (
	"context"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithPrincipal_TagsRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithLogger(ctx, zap.New(core).With(contextutil.Fields(ctx)...))
	ctx = contextutil.WithPrincipal(ctx, domain.Principal{UserID: "u-1", EmployeeID: "e-1", Role: domain.RoleApprover})

	contextutil.GetLogger(ctx, nil).Info("decided")

	assert.Equal(t, "u-1", contextutil.GetUserID(ctx))
	if assert.Equal(t, 1, logs.Len()) {
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "u-1", fields["user_id"])
		assert.Equal(t, "e-1", fields["employee_id"])
		assert.Equal(t, domain.RoleApprover, fields["role"])
	}
}

func TestGetLogger_Fallbacks(t *testing.T) {
	def := zap.NewExample()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	assert.Equal(t, "", contextutil.GetUserID(context.Background()))
}

func TestFields_WithoutPrincipal(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-2")
	fields := contextutil.Fields(ctx)
	if assert.Len(t, fields, 1) {
		assert.Equal(t, "request_id", fields[0].Key)
		assert.Equal(t, "req-2", fields[0].String)
	}
}
