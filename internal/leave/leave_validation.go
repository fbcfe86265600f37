package leave

import (
	"strings"
	"time"

	"go-leave/internal/domain"
	employeeerrors "go-leave/internal/employee/errors"
	leaveerrors "go-leave/internal/leave/errors"

	"github.com/google/uuid"
)

type submitInput struct {
	employeeID uuid.UUID
	kind       domain.LeaveKind
	session    domain.Session
	start      time.Time
	end        time.Time
	reason     string
}

func validateSubmitRequest(actor domain.Principal, req SubmitLeaveRequest) (submitInput, error) {
	var in submitInput

	target := strings.TrimSpace(req.EmployeeID)
	if target == "" {
		target = actor.EmployeeID
	}
	if target == "" {
		return in, leaveerrors.ErrEmployeeRequired
	}
	if target != actor.EmployeeID && !actor.IsPrivileged() {
		return in, leaveerrors.ErrSubmitForOthers
	}
	employeeID, err := uuid.Parse(target)
	if err != nil {
		return in, employeeerrors.ErrInvalidEmployeeID
	}

	kind := domain.LeaveKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		return in, leaveerrors.ErrInvalidKind
	}

	session := domain.SessionFull
	if v := strings.TrimSpace(req.Session); v != "" {
		session = domain.Session(strings.ToUpper(v))
	}
	if !session.Valid() {
		return in, leaveerrors.ErrInvalidSession
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return in, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return in, err
	}
	if end.Before(start) {
		return in, leaveerrors.ErrInvalidDateRange
	}
	if end.Year() != start.Year() {
		return in, leaveerrors.ErrCrossYearRange
	}

	return submitInput{
		employeeID: employeeID,
		kind:       kind,
		session:    session,
		start:      start,
		end:        end,
		reason:     strings.TrimSpace(req.Reason),
	}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
