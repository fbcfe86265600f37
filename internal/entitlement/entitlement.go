// Package entitlement resolves the annual day allotment of an employee for a leave kind.
package entitlement

import (
	"context"
	"database/sql"
	"errors"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/leaveright"
	"go-leave/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Bucket string

const (
	BucketVacation Bucket = "vacation"
	BucketBusiness Bucket = "business"
	BucketSick     Bucket = "sick"
)

// Source tells where an allotment came from.
type Source string

const (
	SourceNone     Source = ""
	SourceLevel    Source = "level"
	SourceEmployee Source = "employee"
)

// BucketFor maps a quota-bearing kind to its bucket. Other kinds are not rationed.
func BucketFor(kind domain.LeaveKind) (Bucket, bool) {
	switch kind {
	case domain.KindAnnual:
		return BucketVacation, true
	case domain.KindBusiness:
		return BucketBusiness, true
	case domain.KindSick:
		return BucketSick, true
	default:
		return "", false
	}
}

type Entitlement struct {
	Kind    domain.LeaveKind `json:"kind"`
	Tracked bool             `json:"tracked"`
	Days    decimal.Decimal  `json:"days"`
	Source  Source           `json:"source,omitempty"`
}

// Resolve picks the allotment for kind. An active level row wins over the
// employee's own values; missing employee values count as zero.
func Resolve(emp employee.Employee, right *leaveright.LeaveRight, kind domain.LeaveKind) Entitlement {
	bucket, tracked := BucketFor(kind)
	if !tracked {
		return Entitlement{Kind: kind}
	}

	if right != nil && right.Active {
		var days int
		switch bucket {
		case BucketVacation:
			days = right.Vacation
		case BucketBusiness:
			days = right.Business
		case BucketSick:
			days = right.Sick
		}
		return Entitlement{Kind: kind, Tracked: true, Days: decimal.NewFromInt(int64(days)), Source: SourceLevel}
	}

	var override *int
	switch bucket {
	case BucketVacation:
		override = emp.VacationDays
	case BucketBusiness:
		override = emp.BusinessDays
	case BucketSick:
		override = emp.SickDays
	}
	days := 0
	if override != nil {
		days = *override
	}
	return Entitlement{Kind: kind, Tracked: true, Days: decimal.NewFromInt(int64(days)), Source: SourceEmployee}
}

// Resolver loads the data Resolve needs.
type Resolver struct {
	employees employee.Repository
	rights    leaveright.Repository
	logger    *zap.Logger
}

func NewResolver(employees employee.Repository, rights leaveright.Repository, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("entitlement.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entitlement.resolver")
	}
	return &Resolver{employees: employees, rights: rights, logger: l}
}

func (r *Resolver) WithTx(tx *sql.Tx) *Resolver {
	return &Resolver{
		employees: r.employees.WithTx(tx),
		rights:    r.rights.WithTx(tx),
		logger:    r.logger,
	}
}

func (r *Resolver) ResolveEntitlement(ctx context.Context, employeeID string, kind domain.LeaveKind) (Entitlement, error) {
	emp, err := r.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entitlement{}, employeeerrors.ErrEmployeeNotFound
		}
		r.logger.Error("resolve entitlement employee lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Entitlement{}, apperror.Storage(err)
	}
	return r.ForEmployee(ctx, *emp, kind)
}

// ForEmployee resolves for an already loaded employee.
func (r *Resolver) ForEmployee(ctx context.Context, emp employee.Employee, kind domain.LeaveKind) (Entitlement, error) {
	if _, tracked := BucketFor(kind); !tracked {
		return Entitlement{Kind: kind}, nil
	}
	if emp.LevelP == "" {
		return Resolve(emp, nil, kind), nil
	}

	right, err := r.rights.FindByLevel(ctx, emp.LevelP)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("resolve entitlement level lookup failed", zap.String("level", emp.LevelP), zap.Error(err))
			return Entitlement{}, apperror.Storage(err)
		}
		right = nil
	}
	return Resolve(emp, right, kind), nil
}
