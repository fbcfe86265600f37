package leave

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDs(ctx context.Context, ids []string) ([]LeaveRequest, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	// HasOverlap reports whether the employee has a PENDING or APPROVED
	// request whose closed date range intersects [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// DecideIfPending applies d only while the row is still PENDING and
	// returns the number of rows changed.
	DecideIfPending(ctx context.Context, id string, d Decision) (int64, error)
	// SetHRConfirmation flips the HR flag on APPROVED rows whose flag differs
	// from confirmed and returns the ids it changed.
	SetHRConfirmation(ctx context.Context, ids []string, confirmed bool, by *string, at time.Time) ([]string, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.conn(ctx).
		Preload("Employee").
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	q := r.conn(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Year > 0 {
		from := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("start_date >= ? AND start_date < ?", from, from.AddDate(1, 0, 0))
	}
	if filter.HRConfirmed != nil {
		q = q.Where("hr_confirmed = ?", *filter.HRConfirmed)
	}
	err := q.Order("start_date DESC").Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []domain.LeaveStatus{domain.StatusPending, domain.StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DecideIfPending(ctx context.Context, id string, d Decision) (int64, error) {
	updates := map[string]any{
		"status":             d.Status,
		"approver_id":        d.ActorID,
		"approver_reason":    d.Reason,
		"approver_signature": d.Signature,
		"approved_at":        d.At,
		"updated_at":         d.At,
	}
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) SetHRConfirmation(ctx context.Context, ids []string, confirmed bool, by *string, at time.Time) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	updates := map[string]any{
		"hr_confirmed": confirmed,
		"updated_at":   at,
	}
	if confirmed {
		updates["hr_confirmed_at"] = at
		updates["hr_confirmed_by"] = by
	} else {
		updates["hr_confirmed_at"] = nil
		updates["hr_confirmed_by"] = nil
	}

	var changed []LeaveRequest
	err := r.conn(ctx).
		Model(&changed).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("id IN ?", ids).
		Where("status = ?", domain.StatusApproved).
		Where("hr_confirmed <> ?", confirmed).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(changed))
	for _, l := range changed {
		out = append(out, l.ID.String())
	}
	return out, nil
}
