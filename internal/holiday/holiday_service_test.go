package holiday_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"go-leave/internal/holiday"
	holidayerrors "go-leave/internal/holiday/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rows       []holiday.Holiday
	findCalls  int
	createErr  error
	upserted   []holiday.Holiday
	deletedIDs []string
}

func (f *fakeRepo) WithTx(*sql.Tx) holiday.Repository { return f }

func (f *fakeRepo) FindBetween(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	f.findCalls++
	var out []holiday.Holiday
	for _, h := range f.rows {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*holiday.Holiday, error) {
	for _, h := range f.rows {
		if h.ID.String() == id {
			return &h, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) Create(_ context.Context, h *holiday.Holiday) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, *h)
	return nil
}

func (f *fakeRepo) Save(_ context.Context, h *holiday.Holiday) error {
	for i := range f.rows {
		if f.rows[i].ID == h.ID {
			f.rows[i] = *h
		}
	}
	return nil
}

func (f *fakeRepo) UpsertByDateTitle(_ context.Context, h *holiday.Holiday) error {
	f.upserted = append(f.upserted, *h)
	return nil
}

func (f *fakeRepo) DeleteByIDs(_ context.Context, ids []string) ([]holiday.Holiday, error) {
	f.deletedIDs = append(f.deletedIDs, ids...)
	var deleted, kept []holiday.Holiday
	for _, h := range f.rows {
		match := false
		for _, id := range ids {
			if h.ID.String() == id {
				match = true
			}
		}
		if match {
			deleted = append(deleted, h)
		} else {
			kept = append(kept, h)
		}
	}
	f.rows = kept
	return deleted, nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestHolidayService_DatesBetween(t *testing.T) {
	ctx := context.Background()
	key := holiday.GetYearCacheKey(2025)

	t.Run("success - cache hit", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, rmock := redismock.NewClientMock()
		repo := &fakeRepo{}
		svc := holiday.NewService(db, repo, rdb)

		rmock.ExpectGet(key).SetVal(`["2025-01-01","2025-03-04","2025-12-25"]`)

		set, err := svc.DatesBetween(ctx, day("2025-03-01"), day("2025-03-31"))

		assert.NoError(t, err)
		assert.Len(t, set, 1)
		assert.True(t, set.Contains(day("2025-03-04")))
		assert.Zero(t, repo.findCalls)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("success - cache miss loads year and stores it", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, rmock := redismock.NewClientMock()
		repo := &fakeRepo{rows: []holiday.Holiday{
			{ID: uuid.New(), Date: day("2025-01-01"), Title: "New Year"},
			{ID: uuid.New(), Date: day("2025-03-04"), Title: "Founders"},
		}}
		svc := holiday.NewService(db, repo, rdb)

		rmock.ExpectGet(key).RedisNil()
		rmock.ExpectSet(key, `["2025-01-01","2025-03-04"]`, holiday.YearCacheTTL).SetVal("OK")

		set, err := svc.DatesBetween(ctx, day("2025-01-01"), day("2025-01-31"))

		assert.NoError(t, err)
		assert.True(t, set.Contains(day("2025-01-01")))
		assert.False(t, set.Contains(day("2025-03-04")))
		assert.Equal(t, 1, repo.findCalls)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("success - redis down falls back to storage", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		rdb, rmock := redismock.NewClientMock()
		repo := &fakeRepo{rows: []holiday.Holiday{{ID: uuid.New(), Date: day("2025-06-02"), Title: "Bank"}}}
		svc := holiday.NewService(db, repo, rdb)

		rmock.ExpectGet(key).SetErr(errors.New("connection refused"))
		rmock.ExpectSet(key, `["2025-06-02"]`, holiday.YearCacheTTL).SetErr(errors.New("connection refused"))

		set, err := svc.DatesBetween(ctx, day("2025-06-01"), day("2025-06-30"))

		assert.NoError(t, err)
		assert.True(t, set.Contains(day("2025-06-02")))
	})

	t.Run("success - no redis", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{rows: []holiday.Holiday{
			{ID: uuid.New(), Date: day("2024-12-31"), Title: "Eve"},
			{ID: uuid.New(), Date: day("2025-01-01"), Title: "New Year"},
		}}
		svc := holiday.NewService(db, repo, nil)

		set, err := svc.DatesBetween(ctx, day("2024-12-30"), day("2025-01-02"))

		assert.NoError(t, err)
		assert.Len(t, set, 2)
		assert.Equal(t, 2, repo.findCalls)
	})
}

func TestHolidayService_BulkSave(t *testing.T) {
	ctx := context.Background()

	t.Run("success - invalidates touched years", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		rdb, rmock := redismock.NewClientMock()
		old := holiday.Holiday{ID: uuid.New(), Date: day("2024-12-31"), Title: "Eve"}
		kept := holiday.Holiday{ID: uuid.New(), Date: day("2026-01-01"), Title: "New Year"}
		repo := &fakeRepo{rows: []holiday.Holiday{old, kept}}
		svc := holiday.NewService(db, repo, rdb)

		mock.ExpectBegin()
		mock.ExpectCommit()
		rmock.ExpectDel(holiday.GetYearCacheKey(2024), holiday.GetYearCacheKey(2025)).SetVal(1)

		resp, err := svc.BulkSave(ctx, holiday.BulkSaveRequest{
			Items:      []holiday.HolidayItem{{Date: "2025-05-01", Title: "Labour Day"}},
			DeletedIDs: []string{old.ID.String()},
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Deleted)
		assert.Len(t, resp.Items, 1)
		assert.Len(t, repo.rows, 2, "rows omitted from the payload are kept")
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("negative - duplicate date and title", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{createErr: &pgconn.PgError{Code: "23505", ConstraintName: "uq_holiday_date_title"}}
		svc := holiday.NewService(db, repo, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.BulkSave(ctx, holiday.BulkSaveRequest{
			Items: []holiday.HolidayItem{{Date: "2025-05-01", Title: "Labour Day"}},
		})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - duplicate inside payload", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := holiday.NewService(db, &fakeRepo{}, nil)

		_, err := svc.BulkSave(ctx, holiday.BulkSaveRequest{
			Items: []holiday.HolidayItem{
				{Date: "2025-05-01", Title: "Labour Day"},
				{Date: "2025-05-01", Title: "Labour Day "},
			},
		})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayAlreadyExists)
	})
}

func TestHolidayService_Import(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{}
		svc := holiday.NewService(db, repo, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Import(context.Background(), strings.NewReader(sampleICS))

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.Imported)
		assert.Len(t, repo.upserted, 5)
	})

	t.Run("negative - invalid calendar", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := holiday.NewService(db, &fakeRepo{}, nil)

		_, err := svc.Import(context.Background(), strings.NewReader("nope"))

		assert.ErrorIs(t, err, holidayerrors.ErrInvalidCalendar)
	})
}
