package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/report"
	reporterrors "go-leave/internal/report/errors"
	"go-leave/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

type fakeLister struct {
	filter leave.ListFilter
	rows   []leave.LeaveRequest
	err    error
}

func (f *fakeLister) FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	f.filter = filter
	return f.rows, f.err
}

func fixedNow() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }

func TestService_ExportApproved(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		approvedAt := time.Date(2025, 2, 20, 8, 30, 0, 0, time.UTC)
		empID := uuid.New()
		lister := &fakeLister{rows: []leave.LeaveRequest{{
			ID:            uuid.New(),
			EmployeeID:    empID,
			Employee:      &employee.Employee{ID: empID, FullName: "Ana Staff", Department: "Finance"},
			Kind:          domain.KindAnnual,
			StartDate:     time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			Session:       domain.SessionAM,
			RequestedDays: decimal.RequireFromString("0.5"),
			Status:        domain.StatusApproved,
			ApprovedAt:    &approvedAt,
			HRConfirmed:   true,
		}}}
		svc := report.NewService(lister, fixedNow)

		buf, name, err := svc.ExportApproved(context.Background(), 0)

		assert.NoError(t, err)
		assert.Equal(t, "approved-leave-2025.xlsx", name)
		assert.Equal(t, 2025, lister.filter.Year)
		assert.Equal(t, domain.StatusApproved, lister.filter.Status)

		f, err := excelize.OpenReader(buf)
		assert.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Approved leave")
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Employee ID", rows[0][0])
		assert.Equal(t, []string{
			empID.String(), "Ana Staff", "Finance", "ANNUAL", "2025-03-03", "2025-03-03", "AM",
			"0.5", "2025-02-20T08:30:00Z", "yes",
		}, rows[1])
	})

	t.Run("negative invalid year", func(t *testing.T) {
		svc := report.NewService(&fakeLister{}, fixedNow)
		_, _, err := svc.ExportApproved(context.Background(), 1999)
		assert.ErrorIs(t, err, reporterrors.ErrInvalidYear)
	})

	t.Run("negative storage failure", func(t *testing.T) {
		svc := report.NewService(&fakeLister{err: errors.New("db down")}, fixedNow)
		_, _, err := svc.ExportApproved(context.Background(), 2025)
		assert.Equal(t, apperror.CodeStorage, apperror.ToHTTP(err).Code)
	})
}
