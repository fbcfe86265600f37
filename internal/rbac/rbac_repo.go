package rbac

import (
	"context"

	"gorm.io/gorm"
)

// RolePermission is one row of role_permissions.
type RolePermission struct {
	Role     string `gorm:"primaryKey"`
	Resource string `gorm:"primaryKey"`
	Action   string `gorm:"primaryKey"`
}

func (RolePermission) TableName() string { return "role_permissions" }

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	ListRolePermissions(ctx context.Context) ([]RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&rows).Error
	return rows, err
}
