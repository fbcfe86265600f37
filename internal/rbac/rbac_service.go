package rbac

import (
	"context"
	"strings"
	"sync"

	"go-leave/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// DefaultPolicies apply even when role_permissions is empty.
var DefaultPolicies = []RolePermission{
	{Role: domain.RoleEmployee, Resource: "leave", Action: "create"},
	{Role: domain.RoleEmployee, Resource: "leave", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "settings", Action: "read"},

	{Role: domain.RoleApprover, Resource: "leave", Action: "create"},
	{Role: domain.RoleApprover, Resource: "leave", Action: "read"},
	{Role: domain.RoleApprover, Resource: "leave", Action: "decide"},
	{Role: domain.RoleApprover, Resource: "settings", Action: "read"},
	{Role: domain.RoleApprover, Resource: "employee", Action: "read"},

	{Role: domain.RoleHR, Resource: "leave", Action: "create"},
	{Role: domain.RoleHR, Resource: "leave", Action: "read"},
	{Role: domain.RoleHR, Resource: "leave", Action: "hr_confirm"},
	{Role: domain.RoleHR, Resource: "settings", Action: "read"},
	{Role: domain.RoleHR, Resource: "settings", Action: "manage"},
	{Role: domain.RoleHR, Resource: "employee", Action: "read"},
	{Role: domain.RoleHR, Resource: "employee", Action: "manage"},

	{Role: domain.RoleAdmin, Resource: "leave", Action: "create"},
	{Role: domain.RoleAdmin, Resource: "leave", Action: "read"},
	{Role: domain.RoleAdmin, Resource: "leave", Action: "decide"},
	{Role: domain.RoleAdmin, Resource: "leave", Action: "hr_confirm"},
	{Role: domain.RoleAdmin, Resource: "settings", Action: "read"},
	{Role: domain.RoleAdmin, Resource: "settings", Action: "manage"},
	{Role: domain.RoleAdmin, Resource: "employee", Action: "read"},
	{Role: domain.RoleAdmin, Resource: "employee", Action: "manage"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
	PermissionsForRole(role string) []PermissionResponse
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

// LoadPolicy replaces the in-memory policy with the defaults plus every
// stored row. On a repository error the previous policy stays in place.
func (s *service) LoadPolicy(ctx context.Context) error {
	var stored []RolePermission
	if s.repo != nil {
		rows, err := s.repo.ListRolePermissions(ctx)
		if err != nil {
			return err
		}
		stored = rows
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	added := 0
	for _, p := range append(append([]RolePermission{}, DefaultPolicies...), stored...) {
		ok, err := s.enforcer.AddPolicy(strings.ToUpper(p.Role), p.Resource, p.Action)
		if err != nil {
			return err
		}
		if ok {
			added++
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("stored", len(stored)), zap.Int("policies", added))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(strings.ToUpper(req.Role), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsForRole(role string) []PermissionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	policies, _ := s.enforcer.GetFilteredPolicy(0, strings.ToUpper(role))
	out := make([]PermissionResponse, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, PermissionResponse{Resource: p[1], Action: p[2]})
	}
	return out
}
