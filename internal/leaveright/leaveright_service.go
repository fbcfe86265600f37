package leaveright

import (
	"context"
	"database/sql"
	"strings"

	leaverighterrors "go-leave/internal/leaveright/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leaveright_service.go -destination=mock/leaveright_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]LeaveRightResponse, error)
	BulkSave(ctx context.Context, req BulkSaveRequest) (BulkSaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leaveright.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaveright.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]LeaveRightResponse, error) {
	rights, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all leave rights failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rights), nil
}

func (s *service) BulkSave(ctx context.Context, req BulkSaveRequest) (BulkSaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk save leave rights requested",
		zap.String("request_id", rid),
		zap.Int("items", len(req.Items)),
		zap.Int("deleted", len(req.DeletedIDs)),
	)

	seen := make(map[string]struct{}, len(req.Items))
	rights := make([]*LeaveRight, 0, len(req.Items))
	for _, item := range req.Items {
		level := strings.ToUpper(strings.TrimSpace(item.Level))
		if _, dup := seen[level]; dup {
			s.logger.Warn("bulk save leave rights duplicate level", zap.String("level", level))
			return BulkSaveResponse{}, leaverighterrors.ErrDuplicateLevelInPayload
		}
		seen[level] = struct{}{}

		active := true
		if item.Active != nil {
			active = *item.Active
		}
		right := &LeaveRight{
			Level:    level,
			Vacation: item.Vacation,
			Business: item.Business,
			Sick:     item.Sick,
			Active:   active,
		}
		if item.ID != "" {
			right.ID = uuid.MustParse(item.ID)
		}
		rights = append(rights, right)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("bulk save leave rights begin tx failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	deleted, err := qtx.DeleteByIDs(ctx, req.DeletedIDs)
	if err != nil {
		s.logger.Error("bulk save leave rights delete failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}

	for _, right := range rights {
		if right.ID != uuid.Nil {
			err = qtx.Save(ctx, right)
		} else {
			right.ID = uuid.New()
			err = qtx.UpsertByLevel(ctx, right)
		}
		if err != nil {
			s.logger.Error("bulk save leave rights persist failed",
				zap.String("level", right.Level),
				zap.Error(err),
			)
			return BulkSaveResponse{}, mapRepositoryError(err)
		}
	}

	saved, err := qtx.FindAll(ctx)
	if err != nil {
		return BulkSaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("bulk save leave rights commit failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("bulk save leave rights success",
		zap.String("request_id", rid),
		zap.Int("saved", len(rights)),
		zap.Int64("deleted", deleted),
	)
	return BulkSaveResponse{Items: mapToListResponse(saved), Deleted: deleted}, nil
}

func mapToResponse(r LeaveRight) LeaveRightResponse {
	return LeaveRightResponse{
		ID:       r.ID.String(),
		Level:    r.Level,
		Vacation: r.Vacation,
		Business: r.Business,
		Sick:     r.Sick,
		Active:   r.Active,
	}
}

func mapToListResponse(rights []LeaveRight) []LeaveRightResponse {
	res := make([]LeaveRightResponse, 0, len(rights))
	for _, r := range rights {
		res = append(res, mapToResponse(r))
	}
	return res
}
