package approver

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	approvererrors "go-leave/internal/approver/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approver_service.go -destination=mock/approver_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context) ([]ApproverResponse, error)
	BulkSave(ctx context.Context, req BulkSaveRequest) (BulkSaveResponse, error)
	// Authorize fails with a FORBIDDEN error unless userID is an approver covering target.
	Authorize(ctx context.Context, userID string, target Target) error
	ListForEmployee(ctx context.Context, target Target) ([]ApproverResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("approver.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approver.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context) ([]ApproverResponse, error) {
	approvers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list approvers failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(approvers), nil
}

func (s *service) Authorize(ctx context.Context, userID string, target Target) error {
	a, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("authorize approver not registered", zap.String("user_id", userID))
			return approvererrors.ErrNotAnApprover
		}
		s.logger.Error("authorize approver lookup failed", zap.String("user_id", userID), zap.Error(err))
		return mapRepositoryError(err)
	}
	if !a.Covers(target) {
		s.logger.Warn("authorize approver out of scope",
			zap.String("user_id", userID),
			zap.String("employee_id", target.EmployeeID),
		)
		return approvererrors.ErrOutOfScope
	}
	return nil
}

func (s *service) ListForEmployee(ctx context.Context, target Target) ([]ApproverResponse, error) {
	approvers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	covering := make([]Approver, 0, len(approvers))
	for _, a := range approvers {
		if a.Covers(target) {
			covering = append(covering, a)
		}
	}
	return mapToListResponse(covering), nil
}

func (s *service) BulkSave(ctx context.Context, req BulkSaveRequest) (BulkSaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk save approvers requested",
		zap.String("request_id", rid),
		zap.Int("items", len(req.Items)),
		zap.Int("deleted", len(req.DeletedIDs)),
	)

	seen := make(map[string]struct{}, len(req.Items))
	approvers := make([]*Approver, 0, len(req.Items))
	for _, item := range req.Items {
		if _, dup := seen[item.UserID]; dup {
			return BulkSaveResponse{}, approvererrors.ErrDuplicateUserInPayload
		}
		seen[item.UserID] = struct{}{}

		a := &Approver{
			UserID:     uuid.MustParse(item.UserID),
			Name:       strings.TrimSpace(item.Name),
			Org:        item.Org,
			Department: item.Department,
			Division:   item.Division,
			Unit:       item.Unit,
		}
		if item.ID != "" {
			a.ID = uuid.MustParse(item.ID)
		} else {
			a.ID = uuid.New()
		}
		for _, eid := range item.EmployeeIDs {
			a.Assignments = append(a.Assignments, Assignment{ApproverID: a.ID, EmployeeID: uuid.MustParse(eid)})
		}
		approvers = append(approvers, a)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("bulk save approvers begin tx failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	deleted, err := qtx.DeleteByIDs(ctx, req.DeletedIDs)
	if err != nil {
		s.logger.Error("bulk save approvers delete failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}

	for i, a := range approvers {
		if req.Items[i].ID != "" {
			err = qtx.Update(ctx, a)
		} else {
			err = qtx.Create(ctx, a)
		}
		if err != nil {
			s.logger.Warn("bulk save approvers persist failed",
				zap.String("user_id", a.UserID.String()),
				zap.Error(err),
			)
			return BulkSaveResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("bulk save approvers commit failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}

	saved := make([]ApproverResponse, 0, len(approvers))
	for _, a := range approvers {
		saved = append(saved, mapToResponse(*a))
	}
	s.logger.Info("bulk save approvers success",
		zap.String("request_id", rid),
		zap.Int("saved", len(saved)),
		zap.Int64("deleted", deleted),
	)
	return BulkSaveResponse{Items: saved, Deleted: deleted}, nil
}

func mapToResponse(a Approver) ApproverResponse {
	ids := make([]string, 0, len(a.Assignments))
	for _, as := range a.Assignments {
		ids = append(ids, as.EmployeeID.String())
	}
	return ApproverResponse{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		Name:        a.Name,
		Org:         a.Org,
		Department:  a.Department,
		Division:    a.Division,
		Unit:        a.Unit,
		EmployeeIDs: ids,
	}
}

func mapToListResponse(approvers []Approver) []ApproverResponse {
	res := make([]ApproverResponse, 0, len(approvers))
	for _, a := range approvers {
		res = append(res, mapToResponse(a))
	}
	return res
}
