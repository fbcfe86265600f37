package leaveright

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leaveright_repo.go -destination=mock/leaveright_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]LeaveRight, error)
	FindByLevel(ctx context.Context, level string) (*LeaveRight, error)
	// Save updates the row by id, inserting it when it does not exist yet.
	Save(ctx context.Context, right *LeaveRight) error
	// UpsertByLevel inserts right or overwrites the allotments of the row with the same level.
	UpsertByLevel(ctx context.Context, right *LeaveRight) error
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

func (r *repository) FindAll(ctx context.Context) ([]LeaveRight, error) {
	var rights []LeaveRight
	err := r.conn(ctx).Order("level ASC").Find(&rights).Error
	return rights, err
}

func (r *repository) FindByLevel(ctx context.Context, level string) (*LeaveRight, error) {
	var right LeaveRight
	err := r.conn(ctx).First(&right, "level = ?", level).Error
	return &right, err
}

func (r *repository) Save(ctx context.Context, right *LeaveRight) error {
	return r.conn(ctx).Save(right).Error
}

func (r *repository) UpsertByLevel(ctx context.Context, right *LeaveRight) error {
	right.UpdatedAt = time.Now().UTC()
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "level"}},
			DoUpdates: clause.AssignmentColumns([]string{"vacation", "business", "sick", "active", "updated_at"}),
		}).
		Create(right).Error
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.conn(ctx).Where("id IN ?", ids).Delete(&LeaveRight{})
	return res.RowsAffected, res.Error
}
