package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-leave/internal/approver"
	"go-leave/internal/calendar"
	"go-leave/internal/domain"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/entitlement"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/obs"
	"go-leave/internal/quota"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Principal, req SubmitLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, actor domain.Principal, id string, req DecideLeaveRequest) (LeaveResponse, error)
	BulkDecide(ctx context.Context, actor domain.Principal, req BulkDecideRequest) ([]BulkDecideResult, error)
	ConfirmHR(ctx context.Context, actor domain.Principal, req ConfirmHRRequest) (ConfirmHRResult, error)
	GetByID(ctx context.Context, actor domain.Principal, id string) (LeaveResponse, error)
	List(ctx context.Context, actor domain.Principal, filter ListFilter) ([]LeaveResponse, error)
	Balance(ctx context.Context, actor domain.Principal, employeeID string, kind domain.LeaveKind, year int) (quota.Balance, error)
	Entitlement(ctx context.Context, actor domain.Principal, employeeID string, kind domain.LeaveKind) (entitlement.Entitlement, error)
}

// HolidayProvider supplies the holiday set used by the business-day count.
type HolidayProvider interface {
	DatesBetween(ctx context.Context, from, to time.Time) (calendar.HolidaySet, error)
}

// ApproverAuthorizer checks that a user may decide for the target employee.
type ApproverAuthorizer interface {
	Authorize(ctx context.Context, userID string, target approver.Target) error
}

// Notifier receives lifecycle events after the owning transaction commits.
// Errors are logged and never change the outcome of the operation.
type Notifier interface {
	Notify(ctx context.Context, evt events.LeaveLifecycleEvent) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, events.LeaveLifecycleEvent) error { return nil }

type Dependencies struct {
	Employees    employee.Repository
	Holidays     HolidayProvider
	Entitlements *entitlement.Resolver
	Ledger       *quota.Ledger
	Approvers    ApproverAuthorizer
	Notifier     Notifier
	Now          func() time.Time
}

type service struct {
	db           *sql.DB
	repo         Repository
	employees    employee.Repository
	holidays     HolidayProvider
	entitlements *entitlement.Resolver
	ledger       *quota.Ledger
	approvers    ApproverAuthorizer
	notifier     Notifier
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	s := &service{
		db:           db,
		repo:         repo,
		employees:    deps.Employees,
		holidays:     deps.Holidays,
		entitlements: deps.Entitlements,
		ledger:       deps.Ledger,
		approvers:    deps.Approvers,
		notifier:     deps.Notifier,
		now:          deps.Now,
		logger:       l,
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Submit(ctx context.Context, actor domain.Principal, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("kind", req.Kind),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	in, err := validateSubmitRequest(actor, req)
	if err != nil {
		log.Warn("submit leave validation failed", zap.Error(err))
		obs.LeaveSubmitted(req.Kind, outcomeOf(err))
		return LeaveResponse{}, err
	}

	l, emp, err := s.submit(ctx, log, in)
	obs.LeaveSubmitted(string(in.kind), outcomeOf(err))
	if err != nil {
		return LeaveResponse{}, err
	}

	log.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", in.employeeID.String()),
		zap.String("requested_days", l.RequestedDays.String()),
	)

	l.Employee = emp
	s.notify(ctx, buildEvent(ctx, events.LeaveSubmittedEvent, *l, actor.UserID))
	return mapToResponse(*l), nil
}

func (s *service) submit(ctx context.Context, log *zap.Logger, in submitInput) (*LeaveRequest, *employee.Employee, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return nil, nil, apperror.Storage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.WithTx(tx).LockByID(ctx, in.employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, employeeerrors.ErrEmployeeNotFound
		}
		log.Error("submit leave employee lock failed", zap.Error(err))
		return nil, nil, apperror.Storage(err)
	}

	holidays, err := s.holidays.DatesBetween(ctx, in.start, in.end)
	if err != nil {
		log.Error("submit leave holiday lookup failed", zap.Error(err))
		return nil, nil, err
	}

	days := calendar.CountBusinessDays(in.start, in.end, in.session, holidays)
	if !days.IsPositive() {
		log.Warn("submit leave has no working days",
			zap.String("start_date", in.start.Format(domain.DateLayout)),
			zap.String("end_date", in.end.Format(domain.DateLayout)),
		)
		return nil, nil, leaveerrors.ErrNoWorkingDays
	}

	overlap, err := qtx.HasOverlap(ctx, in.employeeID.String(), in.start, in.end)
	if err != nil {
		log.Error("submit leave overlap check failed", zap.Error(err))
		return nil, nil, mapRepositoryError(err)
	}
	if overlap {
		log.Warn("submit leave overlap detected",
			zap.String("employee_id", in.employeeID.String()),
			zap.String("start_date", in.start.Format(domain.DateLayout)),
			zap.String("end_date", in.end.Format(domain.DateLayout)),
		)
		return nil, nil, leaveerrors.ErrLeaveOverlap
	}

	if _, tracked := entitlement.BucketFor(in.kind); tracked {
		bal, err := s.ledger.WithTx(tx).BalanceFor(ctx, *emp, in.kind, in.start.Year())
		if err != nil {
			return nil, nil, err
		}
		if !bal.Allows(days) {
			log.Warn("submit leave quota exceeded",
				zap.String("employee_id", in.employeeID.String()),
				zap.String("kind", string(in.kind)),
				zap.String("requested", days.String()),
				zap.String("remaining", bal.Remaining.String()),
			)
			return nil, nil, leaveerrors.ErrQuotaExceeded.WithDetails(map[string]any{
				"remaining": bal.Remaining,
				"requested": days,
			})
		}
	}

	now := s.now().UTC()
	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    in.employeeID,
		Kind:          in.kind,
		StartDate:     in.start,
		EndDate:       in.end,
		Session:       in.session,
		RequestedDays: days,
		Status:        domain.StatusPending,
		Reason:        in.reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := qtx.Create(ctx, l); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return nil, nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return nil, nil, apperror.Storage(err)
	}
	return l, emp, nil
}

func (s *service) Decide(ctx context.Context, actor domain.Principal, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	decision := domain.LeaveStatus(req.Decision)

	l, err := s.decide(ctx, log, actor, id, decision, req.ApproverReason, req.ApproverSignature)
	obs.LeaveDecided(req.Decision, outcomeOf(err))
	if err != nil {
		return LeaveResponse{}, err
	}

	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("decision", req.Decision),
		zap.String("actor_id", actor.UserID),
	)

	evt := buildEvent(ctx, events.LeaveDecidedEvent, *l, actor.UserID)
	if l.ApproverReason != nil {
		evt.Reason = *l.ApproverReason
	}
	s.notify(ctx, evt)
	return mapToResponse(*l), nil
}

func (s *service) decide(ctx context.Context, log *zap.Logger, actor domain.Principal, id string, decision domain.LeaveStatus, reason, signature *string) (*LeaveRequest, error) {
	if !decision.IsDecision() {
		return nil, leaveerrors.ErrInvalidDecision
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("decide leave lookup failed", zap.String("leave_id", id), zap.Error(err))
		}
		return nil, mapRepositoryError(err)
	}
	if l.Status != domain.StatusPending {
		log.Warn("decide leave not pending", zap.String("leave_id", id), zap.String("status", string(l.Status)))
		return nil, leaveerrors.ErrInvalidTransition
	}

	if actor.EmployeeID != "" && actor.EmployeeID == l.EmployeeID.String() {
		log.Warn("decide leave self decision rejected", zap.String("leave_id", id))
		return nil, leaveerrors.ErrSelfDecision
	}
	if actor.Role != domain.RoleAdmin {
		if err := s.approvers.Authorize(ctx, actor.UserID, targetOf(*l)); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	d := Decision{
		Status:    decision,
		ActorID:   actorID,
		Reason:    reason,
		Signature: signature,
		At:        now,
	}
	n, err := s.repo.DecideIfPending(ctx, id, d)
	if err != nil {
		log.Error("decide leave update failed", zap.String("leave_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	if n == 0 {
		log.Warn("decide leave lost race", zap.String("leave_id", id))
		return nil, leaveerrors.ErrInvalidTransition
	}

	l.Status = decision
	l.ApproverID = &actorID
	l.ApproverReason = reason
	l.ApproverSignature = signature
	l.ApprovedAt = &now
	l.UpdatedAt = now
	return l, nil
}

func (s *service) BulkDecide(ctx context.Context, actor domain.Principal, req BulkDecideRequest) ([]BulkDecideResult, error) {
	decision := domain.LeaveStatus(req.Decision)
	if !decision.IsDecision() {
		return nil, leaveerrors.ErrInvalidDecision
	}

	one := DecideLeaveRequest{
		Decision:          req.Decision,
		ApproverReason:    req.ApproverReason,
		ApproverSignature: req.ApproverSignature,
	}
	ids := uniqueIDs(req.IDs)
	results := make([]BulkDecideResult, 0, len(ids))
	for _, id := range ids {
		resp, err := s.Decide(ctx, actor, id, one)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			results = append(results, BulkDecideResult{
				ID:    id,
				Error: &ItemError{Code: httpErr.Code, Message: httpErr.Message},
			})
			continue
		}
		results = append(results, BulkDecideResult{ID: id, OK: true, Status: resp.Status})
	}
	return results, nil
}

func (s *service) ConfirmHR(ctx context.Context, actor domain.Principal, req ConfirmHRRequest) (ConfirmHRResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	action := domain.HRAction(req.Action)
	if !action.Valid() {
		return ConfirmHRResult{}, leaveerrors.ErrInvalidHRAction
	}

	ids := uniqueIDs(req.IDs)
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return ConfirmHRResult{}, leaveerrors.ErrInvalidLeaveID
		}
	}

	existing, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		log.Error("confirm hr lookup failed", zap.Error(err))
		return ConfirmHRResult{}, mapRepositoryError(err)
	}
	found := make(map[string]LeaveRequest, len(existing))
	for _, l := range existing {
		found[l.ID.String()] = l
	}

	var by *string
	if actor.UserID != "" {
		v := actor.UserID
		by = &v
	}
	changed, err := s.repo.SetHRConfirmation(ctx, ids, action == domain.HRConfirm, by, s.now().UTC())
	if err != nil {
		log.Error("confirm hr update failed", zap.Error(err))
		return ConfirmHRResult{}, mapRepositoryError(err)
	}
	changedSet := make(map[string]struct{}, len(changed))
	for _, id := range changed {
		changedSet[id] = struct{}{}
	}

	result := ConfirmHRResult{Affected: len(changed), Results: make([]ConfirmHRItem, 0, len(ids))}
	for _, id := range ids {
		item := ConfirmHRItem{ID: id}
		l, ok := found[id]
		_, didChange := changedSet[id]
		switch {
		case didChange:
			item.Outcome = HROutcomeUpdated
		case !ok:
			item.Outcome = HROutcomeNotFound
		case l.Status != domain.StatusApproved:
			item.Outcome = HROutcomeSkipped
		default:
			item.Outcome = HROutcomeUnchanged
		}
		result.Results = append(result.Results, item)
	}

	obs.LeaveHRConfirmed(req.Action, result.Affected)
	log.Info("confirm hr success",
		zap.String("action", req.Action),
		zap.Int("requested", len(ids)),
		zap.Int("affected", result.Affected),
		zap.String("actor_id", actor.UserID),
	)
	return result, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get leave failed", zap.String("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !canRead(actor, l.EmployeeID.String()) {
		return LeaveResponse{}, leaveerrors.ErrReadOthers
	}
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, actor domain.Principal, filter ListFilter) ([]LeaveResponse, error) {
	if actor.Role == domain.RoleEmployee {
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, leaveerrors.ErrReadOthers
		}
		filter.EmployeeID = actor.EmployeeID
	}
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) Balance(ctx context.Context, actor domain.Principal, employeeID string, kind domain.LeaveKind, year int) (quota.Balance, error) {
	employeeID, err := s.readableEmployee(actor, employeeID)
	if err != nil {
		return quota.Balance{}, err
	}
	if !kind.Valid() {
		return quota.Balance{}, leaveerrors.ErrInvalidKind
	}
	if year <= 0 {
		year = s.now().UTC().Year()
	}
	return s.ledger.RemainingBalance(ctx, employeeID, kind, year)
}

func (s *service) Entitlement(ctx context.Context, actor domain.Principal, employeeID string, kind domain.LeaveKind) (entitlement.Entitlement, error) {
	employeeID, err := s.readableEmployee(actor, employeeID)
	if err != nil {
		return entitlement.Entitlement{}, err
	}
	if !kind.Valid() {
		return entitlement.Entitlement{}, leaveerrors.ErrInvalidKind
	}
	return s.entitlements.ResolveEntitlement(ctx, employeeID, kind)
}

func (s *service) readableEmployee(actor domain.Principal, employeeID string) (string, error) {
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID == "" {
		return "", leaveerrors.ErrEmployeeRequired
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return "", employeeerrors.ErrInvalidEmployeeID
	}
	if !canRead(actor, employeeID) {
		return "", leaveerrors.ErrReadOthers
	}
	return employeeID, nil
}

func (s *service) notify(ctx context.Context, evt events.LeaveLifecycleEvent) {
	if err := s.notifier.Notify(ctx, evt); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("leave notification failed",
			zap.String("event_type", evt.EventType),
			zap.String("leave_id", evt.LeaveID),
			zap.Error(err),
		)
	}
}

// canRead allows employees to see only their own requests.
func canRead(actor domain.Principal, employeeID string) bool {
	if actor.Role != domain.RoleEmployee {
		return true
	}
	return actor.EmployeeID != "" && actor.EmployeeID == employeeID
}

func targetOf(l LeaveRequest) approver.Target {
	t := approver.Target{EmployeeID: l.EmployeeID.String()}
	if l.Employee != nil {
		t.Org = l.Employee.Org
		t.Department = l.Employee.Department
		t.Division = l.Employee.Division
		t.Unit = l.Employee.Unit
	}
	return t
}

func outcomeOf(err error) string {
	if err == nil {
		return obs.OutcomeOK
	}
	return apperror.ToHTTP(err).Code
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func buildEvent(ctx context.Context, eventType string, l LeaveRequest, actorID string) events.LeaveLifecycleEvent {
	evt := events.LeaveLifecycleEvent{
		EventType:     eventType,
		RequestID:     contextutil.GetRequestID(ctx),
		LeaveID:       l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		Kind:          string(l.Kind),
		StartDate:     l.StartDate.Format(domain.DateLayout),
		EndDate:       l.EndDate.Format(domain.DateLayout),
		Session:       string(l.Session),
		RequestedDays: l.RequestedDays.String(),
		Status:        string(l.Status),
		ActorID:       actorID,
		Reason:        l.Reason,
		OccurredAt:    l.UpdatedAt,
	}
	if l.Employee != nil {
		evt.EmployeeName = l.Employee.FullName
		evt.Org = l.Employee.Org
		evt.Department = l.Employee.Department
		evt.Division = l.Employee.Division
		evt.Unit = l.Employee.Unit
	}
	return evt
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                l.ID.String(),
		EmployeeID:        l.EmployeeID.String(),
		Kind:              string(l.Kind),
		StartDate:         l.StartDate.Format(domain.DateLayout),
		EndDate:           l.EndDate.Format(domain.DateLayout),
		Session:           string(l.Session),
		RequestedDays:     l.RequestedDays,
		Status:            string(l.Status),
		Reason:            l.Reason,
		ApproverReason:    l.ApproverReason,
		ApproverSignature: l.ApproverSignature,
		HRConfirmed:       l.HRConfirmed,
		CreatedAt:         l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.HRConfirmedAt != nil {
		v := l.HRConfirmedAt.Format(time.RFC3339)
		resp.HRConfirmedAt = &v
	}
	if l.HRConfirmedBy != nil {
		v := l.HRConfirmedBy.String()
		resp.HRConfirmedBy = &v
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
