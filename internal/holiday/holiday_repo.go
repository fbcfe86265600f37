package holiday

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindBetween returns holidays with from <= date <= to, ordered by date.
	FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	Create(ctx context.Context, h *Holiday) error
	Save(ctx context.Context, h *Holiday) error
	// UpsertByDateTitle inserts h or updates the note of the row with the same date and title.
	UpsertByDateTitle(ctx context.Context, h *Holiday) error
	// DeleteByIDs removes the rows and returns what was deleted.
	DeleteByIDs(ctx context.Context, ids []string) ([]Holiday, error)
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

func (r *repository) FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.conn(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC, title ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.conn(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) Save(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Save(h).Error
}

func (r *repository) UpsertByDateTitle(ctx context.Context, h *Holiday) error {
	h.UpdatedAt = time.Now().UTC()
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			OnConstraint: "uq_holiday_date_title",
			DoUpdates:    clause.AssignmentColumns([]string{"note", "updated_at"}),
		}).
		Create(h).Error
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []string) ([]Holiday, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var deleted []Holiday
	err := r.conn(ctx).
		Clauses(clause.Returning{}).
		Where("id IN ?", ids).
		Delete(&deleted).Error
	return deleted, err
}
