package approver

import (
	"context"
	"database/sql"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=approver_repo.go -destination=mock/approver_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]Approver, error)
	FindByUserID(ctx context.Context, userID string) (*Approver, error)
	Create(ctx context.Context, a *Approver) error
	// Update saves a and replaces its assignments.
	Update(ctx context.Context, a *Approver) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx)
}

func (r *repository) FindAll(ctx context.Context) ([]Approver, error) {
	var approvers []Approver
	err := r.conn(ctx).
		Preload("Assignments").
		Order("name ASC").
		Find(&approvers).Error
	return approvers, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Approver, error) {
	var a Approver
	err := r.conn(ctx).
		Preload("Assignments").
		First(&a, "user_id = ?", userID).Error
	return &a, err
}

func (r *repository) Create(ctx context.Context, a *Approver) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Approver) error {
	db := r.conn(ctx)
	res := db.Model(&Approver{}).Where("id = ?", a.ID).Updates(map[string]any{
		"user_id":    a.UserID,
		"name":       a.Name,
		"org":        a.Org,
		"department": a.Department,
		"division":   a.Division,
		"unit":       a.Unit,
		"updated_at": gorm.Expr("NOW()"),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.conn(ctx).Where("approver_id = ?", a.ID).Delete(&Assignment{}).Error; err != nil {
		return err
	}
	if len(a.Assignments) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&a.Assignments).Error
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.conn(ctx).Where("id IN ?", ids).Delete(&Approver{})
	return res.RowsAffected, res.Error
}
