package quota

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/shared/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// SumUsage totals requested_days of the employee's requests of kind whose
	// start_date falls in year.
	SumUsage(ctx context.Context, employeeID string, kind domain.LeaveKind, year int) (Usage, error)
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

const sumUsageQuery = `
SELECT
	COALESCE(SUM(requested_days) FILTER (WHERE status = ?), 0) AS approved,
	COALESCE(SUM(requested_days) FILTER (WHERE status = ?), 0) AS pending
FROM leave_requests
WHERE employee_id = ?
  AND kind = ?
  AND start_date >= ?
  AND start_date < ?`

func (r *repository) SumUsage(ctx context.Context, employeeID string, kind domain.LeaveKind, year int) (Usage, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var row struct {
		Approved decimal.Decimal
		Pending  decimal.Decimal
	}
	err := database.Conn(ctx, r.db, r.tx).
		Raw(sumUsageQuery,
			domain.StatusApproved, domain.StatusPending,
			employeeID, kind, from, to,
		).
		Scan(&row).Error
	if err != nil {
		return Usage{}, err
	}
	return Usage{Approved: row.Approved, Pending: row.Pending}, nil
}
