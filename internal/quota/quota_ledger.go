package quota

import (
	"context"
	"database/sql"
	"errors"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/entitlement"
	"go-leave/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger answers remaining-balance queries. Bind it to a transaction with
// WithTx to read consistently with an in-flight submission.
type Ledger struct {
	employees employee.Repository
	resolver  *entitlement.Resolver
	repo      Repository
	logger    *zap.Logger
}

func NewLedger(employees employee.Repository, resolver *entitlement.Resolver, repo Repository, logger ...*zap.Logger) *Ledger {
	l := zap.L().Named("quota.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.ledger")
	}
	return &Ledger{employees: employees, resolver: resolver, repo: repo, logger: l}
}

func (l *Ledger) WithTx(tx *sql.Tx) *Ledger {
	return &Ledger{
		employees: l.employees.WithTx(tx),
		resolver:  l.resolver.WithTx(tx),
		repo:      l.repo.WithTx(tx),
		logger:    l.logger,
	}
}

func (l *Ledger) RemainingBalance(ctx context.Context, employeeID string, kind domain.LeaveKind, asOfYear int) (Balance, error) {
	emp, err := l.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Balance{}, employeeerrors.ErrEmployeeNotFound
		}
		l.logger.Error("remaining balance employee lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Balance{}, apperror.Storage(err)
	}
	return l.BalanceFor(ctx, *emp, kind, asOfYear)
}

// BalanceFor computes the balance for an already loaded employee.
func (l *Ledger) BalanceFor(ctx context.Context, emp employee.Employee, kind domain.LeaveKind, asOfYear int) (Balance, error) {
	ent, err := l.resolver.ForEmployee(ctx, emp, kind)
	if err != nil {
		return Balance{}, err
	}

	usage, err := l.repo.SumUsage(ctx, emp.ID.String(), kind, asOfYear)
	if err != nil {
		l.logger.Error("remaining balance aggregate failed",
			zap.String("employee_id", emp.ID.String()),
			zap.String("kind", string(kind)),
			zap.Int("year", asOfYear),
			zap.Error(err),
		)
		return Balance{}, apperror.Storage(err)
	}

	return NewBalance(asOfYear, ent, usage), nil
}
