package app

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/approver"
	"go-leave/internal/auth"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/entitlement"
	"go-leave/internal/holiday"
	"go-leave/internal/leave"
	"go-leave/internal/leaveright"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notification"
	"go-leave/internal/quota"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra is the set of live connections modules are built from.
type Infra struct {
	Config *config.Config
	SQL    *sql.DB
	Gorm   *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

func registerModules(api *gin.RouterGroup, in Infra) error {
	logger := in.Logger

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(in.Gorm)
	authRepo := auth.NewRepository(in.Gorm)
	employeeRepo := employee.NewRepository(in.Gorm)
	leaveRightRepo := leaveright.NewRepository(in.Gorm)
	holidayRepo := holiday.NewRepository(in.Gorm)
	approverRepo := approver.NewRepository(in.Gorm)
	leaveRepo := leave.NewRepository(in.Gorm)
	quotaRepo := quota.NewRepository(in.Gorm)
	outboxRepo := kafka.NewOutboxRepository(in.SQL)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return err
	}

	// --- Services ---
	tokens := auth.TokenConfig{
		Secret:     in.Config.Auth.JWTSecret,
		AccessTTL:  in.Config.Auth.AccessTokenTTL,
		RefreshTTL: in.Config.Auth.RefreshTokenTTL,
	}
	authService := auth.NewService(authRepo, employeeRepo, tokens, logger)
	employeeService := employee.NewService(in.SQL, employeeRepo, logger)
	leaveRightService := leaveright.NewService(in.SQL, leaveRightRepo, logger)
	holidayService := holiday.NewService(in.SQL, holidayRepo, in.Redis, logger)
	approverService := approver.NewService(in.SQL, approverRepo, logger)

	resolver := entitlement.NewResolver(employeeRepo, leaveRightRepo, logger)
	ledger := quota.NewLedger(employeeRepo, resolver, quotaRepo, logger)

	leaveService := leave.NewService(in.SQL, leaveRepo, leave.Dependencies{
		Employees:    employeeRepo,
		Holidays:     holidayService,
		Entitlements: resolver,
		Ledger:       ledger,
		Approvers:    approverService,
		Notifier:     notification.NewOutboxNotifier(outboxRepo, logger),
		Now:          time.Now,
	}, logger)
	reportService := report.NewService(leaveRepo, time.Now, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, tokens, in.Config.Auth.SecureCookies, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveRightHandler := leaveright.NewHandler(leaveRightService, logger)
	holidayHandler := holiday.NewHandler(holidayService, logger)
	approverHandler := approver.NewHandler(approverService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	auth.RegisterRoutes(api, authHandler, rbacService)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(in.Config.Auth.JWTSecret))
	{
		rbac.RegisterRoutes(protected, rbacHandler)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		leaveright.RegisterRoutes(protected, leaveRightHandler, rbacService)
		holiday.RegisterRoutes(protected, holidayHandler, rbacService)
		approver.RegisterRoutes(protected, approverHandler, rbacService)
		report.RegisterRoutes(protected, reportHandler, rbacService)
		leave.RegisterRoutes(protected, leaveHandler, rbacService, in.Redis)
	}

	return nil
}
