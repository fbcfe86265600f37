package leave_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"go-leave/internal/approver"
	"go-leave/internal/calendar"
	"go-leave/internal/domain"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/leave"
	"go-leave/internal/leaveright"
	"go-leave/internal/quota"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore backs the leave, employee and quota fakes so balances are
// aggregated from the same rows the service writes.
type memStore struct {
	mu        sync.Mutex
	leaves    map[string]leave.LeaveRequest
	employees map[string]employee.Employee
	rights    map[string]leaveright.LeaveRight
}

func newMemStore() *memStore {
	return &memStore{
		leaves:    map[string]leave.LeaveRequest{},
		employees: map[string]employee.Employee{},
		rights:    map[string]leaveright.LeaveRight{},
	}
}

func (m *memStore) addEmployee(e employee.Employee) employee.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.employees[e.ID.String()] = e
	return e
}

func (m *memStore) addLeave(l leave.LeaveRequest) leave.LeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	m.leaves[l.ID.String()] = l
	return l
}

func (m *memStore) leave(id string) leave.LeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaves[id]
}

func (m *memStore) withEmployee(l leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := m.employees[l.EmployeeID.String()]; ok {
		l.Employee = &e
	}
	return l
}

type fakeLeaveRepository struct {
	store *memStore

	// beforeDecide runs inside DecideIfPending before the status check.
	beforeDecide func(id string)
	overlapErr   error
	createErr    error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *l
	cp.Employee = nil
	f.store.addLeave(cp)
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	l, ok := f.store.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	l = f.store.withEmployee(l)
	return &l, nil
}

func (f *fakeLeaveRepository) FindByIDs(ctx context.Context, ids []string) ([]leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []leave.LeaveRequest
	for _, id := range ids {
		if l, ok := f.store.leaves[id]; ok {
			out = append(out, f.store.withEmployee(l))
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range f.store.leaves {
		if filter.EmployeeID != "" && l.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && l.Kind != filter.Kind {
			continue
		}
		if filter.Year > 0 && l.StartDate.Year() != filter.Year {
			continue
		}
		if filter.HRConfirmed != nil && l.HRConfirmed != *filter.HRConfirmed {
			continue
		}
		out = append(out, f.store.withEmployee(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (f *fakeLeaveRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	if f.overlapErr != nil {
		return false, f.overlapErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, l := range f.store.leaves {
		if l.EmployeeID.String() != employeeID {
			continue
		}
		if l.Status != domain.StatusPending && l.Status != domain.StatusApproved {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepository) DecideIfPending(ctx context.Context, id string, d leave.Decision) (int64, error) {
	if f.beforeDecide != nil {
		f.beforeDecide(id)
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	l, ok := f.store.leaves[id]
	if !ok || l.Status != domain.StatusPending {
		return 0, nil
	}
	actor := d.ActorID
	at := d.At
	l.Status = d.Status
	l.ApproverID = &actor
	l.ApproverReason = d.Reason
	l.ApproverSignature = d.Signature
	l.ApprovedAt = &at
	f.store.leaves[id] = l
	return 1, nil
}

func (f *fakeLeaveRepository) SetHRConfirmation(ctx context.Context, ids []string, confirmed bool, by *string, at time.Time) ([]string, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var changed []string
	for _, id := range ids {
		l, ok := f.store.leaves[id]
		if !ok || l.Status != domain.StatusApproved || l.HRConfirmed == confirmed {
			continue
		}
		l.HRConfirmed = confirmed
		if confirmed {
			stamp := at
			l.HRConfirmedAt = &stamp
			if by != nil {
				u := uuid.MustParse(*by)
				l.HRConfirmedBy = &u
			}
		} else {
			l.HRConfirmedAt = nil
			l.HRConfirmedBy = nil
		}
		f.store.leaves[id] = l
		changed = append(changed, id)
	}
	return changed, nil
}

type fakeEmployeeRepository struct {
	store *memStore
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	f.store.addEmployee(*emp)
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []employee.Employee
	for _, e := range f.store.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeEmployeeRepository) LockByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	f.store.addEmployee(*emp)
	return nil
}

type fakeLeaveRightRepository struct {
	store *memStore
}

func (f *fakeLeaveRightRepository) WithTx(tx *sql.Tx) leaveright.Repository { return f }

func (f *fakeLeaveRightRepository) FindAll(ctx context.Context) ([]leaveright.LeaveRight, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []leaveright.LeaveRight
	for _, r := range f.store.rights {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeLeaveRightRepository) FindByLevel(ctx context.Context, level string) (*leaveright.LeaveRight, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r, ok := f.store.rights[level]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeLeaveRightRepository) Save(ctx context.Context, right *leaveright.LeaveRight) error {
	return f.UpsertByLevel(ctx, right)
}

func (f *fakeLeaveRightRepository) UpsertByLevel(ctx context.Context, right *leaveright.LeaveRight) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.rights[right.Level] = *right
	return nil
}

func (f *fakeLeaveRightRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return 0, nil
}

// fakeQuotaRepository aggregates the in-memory leave rows by start year.
type fakeQuotaRepository struct {
	store *memStore
}

func (f *fakeQuotaRepository) WithTx(tx *sql.Tx) quota.Repository { return f }

func (f *fakeQuotaRepository) SumUsage(ctx context.Context, employeeID string, kind domain.LeaveKind, year int) (quota.Usage, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	u := quota.Usage{Approved: decimal.Zero, Pending: decimal.Zero}
	for _, l := range f.store.leaves {
		if l.EmployeeID.String() != employeeID || l.Kind != kind || l.StartDate.Year() != year {
			continue
		}
		switch l.Status {
		case domain.StatusApproved:
			u.Approved = u.Approved.Add(l.RequestedDays)
		case domain.StatusPending:
			u.Pending = u.Pending.Add(l.RequestedDays)
		}
	}
	return u, nil
}

type fakeHolidays struct {
	set calendar.HolidaySet
	err error
}

func (f *fakeHolidays) DatesBetween(ctx context.Context, from, to time.Time) (calendar.HolidaySet, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.set == nil {
		return calendar.HolidaySet{}, nil
	}
	return f.set, nil
}

type fakeAuthorizer struct {
	calls       int
	authorizeFn func(userID string, target approver.Target) error
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, userID string, target approver.Target) error {
	f.calls++
	if f.authorizeFn != nil {
		return f.authorizeFn(userID, target)
	}
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []events.LeaveLifecycleEvent
	err    error
}

func (r *recordingNotifier) Notify(ctx context.Context, evt events.LeaveLifecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }
