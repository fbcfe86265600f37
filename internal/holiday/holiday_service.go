package holiday

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"strings"
	"time"

	"go-leave/internal/calendar"
	"go-leave/internal/domain"
	holidayerrors "go-leave/internal/holiday/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	BulkSave(ctx context.Context, req BulkSaveRequest) (BulkSaveResponse, error)
	Import(ctx context.Context, r io.Reader) (ImportResponse, error)
	ImportURL(ctx context.Context, rawURL string) (ImportResponse, error)
	// DatesBetween returns the holiday set covering [from, to].
	DatesBetween(ctx context.Context, from, to time.Time) (calendar.HolidaySet, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	rdb        *redis.Client
	sf         *singleflight.Group
	httpClient *http.Client
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		httpClient: &http.Client{Timeout: icsFetchTimeout},
		logger:     l,
	}
}

func (s *service) List(ctx context.Context, year int) ([]HolidayResponse, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.FindBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Int("year", year), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) DatesBetween(ctx context.Context, from, to time.Time) (calendar.HolidaySet, error) {
	set := calendar.HolidaySet{}
	if to.Before(from) {
		return set, nil
	}
	lo := from.Format(domain.DateLayout)
	hi := to.Format(domain.DateLayout)
	for year := from.Year(); year <= to.Year(); year++ {
		dates, err := s.yearDates(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			if d >= lo && d <= hi {
				set[d] = struct{}{}
			}
		}
	}
	return set, nil
}

func (s *service) BulkSave(ctx context.Context, req BulkSaveRequest) (BulkSaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk save holidays requested",
		zap.String("request_id", rid),
		zap.Int("items", len(req.Items)),
		zap.Int("deleted", len(req.DeletedIDs)),
	)

	holidays := make([]*Holiday, 0, len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		date, err := time.Parse(domain.DateLayout, item.Date)
		if err != nil {
			return BulkSaveResponse{}, holidayerrors.ErrInvalidHolidayDate
		}
		title := strings.TrimSpace(item.Title)
		key := item.Date + "|" + title
		if _, dup := seen[key]; dup {
			s.logger.Warn("bulk save holidays duplicate in payload", zap.String("key", key))
			return BulkSaveResponse{}, holidayerrors.ErrHolidayAlreadyExists
		}
		seen[key] = struct{}{}

		h := &Holiday{Date: date, Title: title, Note: item.Note}
		if item.ID != "" {
			h.ID = uuid.MustParse(item.ID)
		}
		holidays = append(holidays, h)
	}

	touched := make(map[int]struct{})

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("bulk save holidays begin tx failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	deleted, err := qtx.DeleteByIDs(ctx, req.DeletedIDs)
	if err != nil {
		s.logger.Error("bulk save holidays delete failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}
	for _, d := range deleted {
		touched[d.Date.Year()] = struct{}{}
	}

	for _, h := range holidays {
		if h.ID != uuid.Nil {
			existing, err := qtx.FindByID(ctx, h.ID.String())
			if err != nil {
				return BulkSaveResponse{}, mapRepositoryError(err)
			}
			touched[existing.Date.Year()] = struct{}{}
			h.CreatedAt = existing.CreatedAt
			err = qtx.Save(ctx, h)
			if err != nil {
				s.logger.Warn("bulk save holidays update failed", zap.String("id", h.ID.String()), zap.Error(err))
				return BulkSaveResponse{}, mapRepositoryError(err)
			}
		} else {
			h.ID = uuid.New()
			if err := qtx.Create(ctx, h); err != nil {
				s.logger.Warn("bulk save holidays insert failed",
					zap.String("date", h.Date.Format(domain.DateLayout)),
					zap.String("title", h.Title),
					zap.Error(err),
				)
				return BulkSaveResponse{}, mapRepositoryError(err)
			}
		}
		touched[h.Date.Year()] = struct{}{}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("bulk save holidays commit failed", zap.Error(err))
		return BulkSaveResponse{}, mapRepositoryError(err)
	}
	s.invalidateYears(ctx, touched)

	saved := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		saved = append(saved, mapToResponse(*h))
	}
	s.logger.Info("bulk save holidays success",
		zap.String("request_id", rid),
		zap.Int("saved", len(saved)),
		zap.Int("deleted", len(deleted)),
	)
	return BulkSaveResponse{Items: saved, Deleted: len(deleted)}, nil
}

func (s *service) Import(ctx context.Context, r io.Reader) (ImportResponse, error) {
	parsed, err := ParseICS(r)
	if err != nil {
		s.logger.Warn("import holidays parse failed", zap.Error(err))
		return ImportResponse{}, holidayerrors.ErrInvalidCalendar
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("import holidays begin tx failed", zap.Error(err))
		return ImportResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	touched := make(map[int]struct{})
	qtx := s.repo.WithTx(tx)
	items := make([]HolidayResponse, 0, len(parsed))
	for i := range parsed {
		h := &parsed[i]
		h.ID = uuid.New()
		if err := qtx.UpsertByDateTitle(ctx, h); err != nil {
			s.logger.Error("import holidays upsert failed", zap.String("title", h.Title), zap.Error(err))
			return ImportResponse{}, mapRepositoryError(err)
		}
		touched[h.Date.Year()] = struct{}{}
		items = append(items, mapToResponse(*h))
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("import holidays commit failed", zap.Error(err))
		return ImportResponse{}, mapRepositoryError(err)
	}
	s.invalidateYears(ctx, touched)

	s.logger.Info("import holidays success", zap.Int("imported", len(items)))
	return ImportResponse{Imported: len(items), Items: items}, nil
}

func (s *service) ImportURL(ctx context.Context, rawURL string) (ImportResponse, error) {
	body, err := FetchICS(ctx, s.httpClient, rawURL)
	if err != nil {
		s.logger.Warn("import holidays fetch failed", zap.String("url", rawURL), zap.Error(err))
		return ImportResponse{}, holidayerrors.ErrCalendarUnavailable
	}
	defer body.Close()
	return s.Import(ctx, body)
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:    h.ID.String(),
		Date:  h.Date.Format(domain.DateLayout),
		Title: h.Title,
		Note:  h.Note,
	}
}

func mapToListResponse(rows []Holiday) []HolidayResponse {
	res := make([]HolidayResponse, 0, len(rows))
	for _, h := range rows {
		res = append(res, mapToResponse(h))
	}
	return res
}
