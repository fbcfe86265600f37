package entitlement_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/entitlement"
	"go-leave/internal/leaveright"
	"go-leave/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func TestResolve(t *testing.T) {
	emp := employee.Employee{LevelP: "P3", VacationDays: intPtr(15), SickDays: intPtr(20)}
	p3 := &leaveright.LeaveRight{Level: "P3", Vacation: 10, Business: 3, Sick: 30, Active: true}

	tests := []struct {
		name    string
		emp     employee.Employee
		right   *leaveright.LeaveRight
		kind    domain.LeaveKind
		tracked bool
		days    int64
		source  entitlement.Source
	}{
		{"level row wins for annual", emp, p3, domain.KindAnnual, true, 10, entitlement.SourceLevel},
		{"level row wins for business", emp, p3, domain.KindBusiness, true, 3, entitlement.SourceLevel},
		{"level row wins for sick", emp, p3, domain.KindSick, true, 30, entitlement.SourceLevel},
		{"no level row falls back to employee", emp, nil, domain.KindAnnual, true, 15, entitlement.SourceEmployee},
		{"unset employee value is zero", emp, nil, domain.KindBusiness, true, 0, entitlement.SourceEmployee},
		{"inactive level row is ignored", emp, &leaveright.LeaveRight{Level: "P3", Vacation: 99}, domain.KindAnnual, true, 15, entitlement.SourceEmployee},
		{"maternity is not tracked", emp, p3, domain.KindMaternity, false, 0, entitlement.SourceNone},
		{"unpaid is not tracked", emp, p3, domain.KindUnpaid, false, 0, entitlement.SourceNone},
		{"annual holiday is not tracked", emp, p3, domain.KindAnnualHoliday, false, 0, entitlement.SourceNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := entitlement.Resolve(tc.emp, tc.right, tc.kind)

			assert.Equal(t, tc.tracked, got.Tracked)
			assert.True(t, decimal.NewFromInt(tc.days).Equal(got.Days), "days: %s", got.Days)
			assert.Equal(t, tc.source, got.Source)
			assert.Equal(t, tc.kind, got.Kind)
		})
	}
}

type fakeEmployees struct {
	employee.Repository
	emps map[string]employee.Employee
	err  error
}

func (f *fakeEmployees) WithTx(*sql.Tx) employee.Repository { return f }

func (f *fakeEmployees) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.emps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

type fakeRights struct {
	leaveright.Repository
	rows map[string]leaveright.LeaveRight
}

func (f *fakeRights) WithTx(*sql.Tx) leaveright.Repository { return f }

func (f *fakeRights) FindByLevel(_ context.Context, level string) (*leaveright.LeaveRight, error) {
	r, ok := f.rows[level]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func TestResolver_ResolveEntitlement(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()
	emps := &fakeEmployees{emps: map[string]employee.Employee{
		id: {LevelP: "P3", VacationDays: intPtr(4)},
	}}
	rights := &fakeRights{rows: map[string]leaveright.LeaveRight{
		"P3": {Level: "P3", Vacation: 10, Active: true},
	}}

	t.Run("success", func(t *testing.T) {
		got, err := entitlement.NewResolver(emps, rights).ResolveEntitlement(ctx, id, domain.KindAnnual)

		assert.NoError(t, err)
		assert.True(t, got.Tracked)
		assert.True(t, decimal.NewFromInt(10).Equal(got.Days))
	})

	t.Run("success - unknown level uses employee values", func(t *testing.T) {
		other := uuid.NewString()
		emps.emps[other] = employee.Employee{LevelP: "P9", VacationDays: intPtr(4)}

		got, err := entitlement.NewResolver(emps, rights).ResolveEntitlement(ctx, other, domain.KindAnnual)

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(4).Equal(got.Days))
	})

	t.Run("negative - unknown employee", func(t *testing.T) {
		_, err := entitlement.NewResolver(emps, rights).ResolveEntitlement(ctx, uuid.NewString(), domain.KindAnnual)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative - storage failure", func(t *testing.T) {
		broken := &fakeEmployees{err: errors.New("connection reset")}

		_, err := entitlement.NewResolver(broken, rights).ResolveEntitlement(ctx, id, domain.KindAnnual)

		assert.ErrorIs(t, err, apperror.ErrStorage)
	})
}
