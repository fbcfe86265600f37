package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/leave"
	reporterrors "go-leave/internal/report/errors"
	"go-leave/internal/shared/apperror"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	sheetName = "Approved leave"
	minYear   = 2000
	maxYear   = 2100
)

var header = []string{
	"Employee ID", "Employee", "Department", "Kind", "Start", "End", "Session",
	"Days", "Approved at", "HR confirmed", "HR confirmed at",
}

// LeaveLister is the read side of the leave repository the export needs.
type LeaveLister interface {
	FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error)
}

type Service interface {
	ExportApproved(ctx context.Context, year int) (*bytes.Buffer, string, error)
}

type service struct {
	leaves LeaveLister
	now    func() time.Time
	logger *zap.Logger
}

func NewService(leaves LeaveLister, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{leaves: leaves, now: now, logger: l}
}

// ExportApproved renders every APPROVED request starting in year as an xlsx
// workbook, ordered as the repository returns them.
func (s *service) ExportApproved(ctx context.Context, year int) (*bytes.Buffer, string, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < minYear || year > maxYear {
		return nil, "", reporterrors.ErrInvalidYear
	}

	rows, err := s.leaves.FindAll(ctx, leave.ListFilter{Status: domain.StatusApproved, Year: year})
	if err != nil {
		return nil, "", apperror.Storage(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("create export sheet failed", zap.Error(err))
		return nil, "", reporterrors.ErrExportGenerate
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, title := range header {
		_ = f.SetCellValue(sheetName, cell(i, 1), title)
	}
	_ = f.SetCellStyle(sheetName, cell(0, 1), cell(len(header)-1, 1), headerStyle)
	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "C", 24)
	_ = f.SetColWidth(sheetName, "D", "K", 16)

	for i, l := range rows {
		r := i + 2
		values := []any{
			l.EmployeeID.String(),
			employeeName(l),
			employeeDepartment(l),
			string(l.Kind),
			l.StartDate.Format(domain.DateLayout),
			l.EndDate.Format(domain.DateLayout),
			string(l.Session),
			l.RequestedDays.InexactFloat64(),
			formatTime(l.ApprovedAt),
			yesNo(l.HRConfirmed),
			formatTime(l.HRConfirmedAt),
		}
		for col, v := range values {
			if err := f.SetCellValue(sheetName, cell(col, r), v); err != nil {
				s.logger.Error("write export cell failed", zap.Error(err))
				return nil, "", reporterrors.ErrExportGenerate
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return nil, "", reporterrors.ErrExportGenerate
	}

	s.logger.Info("leave export generated", zap.Int("year", year), zap.Int("rows", len(rows)))
	return buf, fmt.Sprintf("approved-leave-%d.xlsx", year), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func employeeName(l leave.LeaveRequest) string {
	if l.Employee == nil {
		return ""
	}
	return l.Employee.FullName
}

func employeeDepartment(l leave.LeaveRequest) string {
	if l.Employee == nil {
		return ""
	}
	return l.Employee.Department
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
