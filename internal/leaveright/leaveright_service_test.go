package leaveright_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leave/internal/leaveright"
	leaverighterrors "go-leave/internal/leaveright/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rows      map[string]leaveright.LeaveRight
	deleted   []string
	upsertErr error
}

func newFakeRepo(rows ...leaveright.LeaveRight) *fakeRepo {
	f := &fakeRepo{rows: map[string]leaveright.LeaveRight{}}
	for _, r := range rows {
		f.rows[r.ID.String()] = r
	}
	return f
}

func (f *fakeRepo) WithTx(*sql.Tx) leaveright.Repository { return f }

func (f *fakeRepo) FindAll(context.Context) ([]leaveright.LeaveRight, error) {
	out := make([]leaveright.LeaveRight, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) FindByLevel(_ context.Context, level string) (*leaveright.LeaveRight, error) {
	for _, r := range f.rows {
		if r.Level == level {
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) Save(_ context.Context, right *leaveright.LeaveRight) error {
	f.rows[right.ID.String()] = *right
	return nil
}

func (f *fakeRepo) UpsertByLevel(_ context.Context, right *leaveright.LeaveRight) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for id, r := range f.rows {
		if r.Level == right.Level {
			right.ID = r.ID
			f.rows[id] = *right
			return nil
		}
	}
	f.rows[right.ID.String()] = *right
	return nil
}

func (f *fakeRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.rows[id]; ok {
			delete(f.rows, id)
			n++
		}
	}
	f.deleted = append(f.deleted, ids...)
	return n, nil
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveRightService_BulkSave(t *testing.T) {
	ctx := context.Background()
	p1 := leaveright.LeaveRight{ID: uuid.New(), Level: "P1", Vacation: 6, Active: true}
	p2 := leaveright.LeaveRight{ID: uuid.New(), Level: "P2", Vacation: 8, Active: true}

	t.Run("success - omitted rows are kept", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := newFakeRepo(p1, p2)
		svc := leaveright.NewService(db, repo)

		expectTx(t, mock, true)
		resp, err := svc.BulkSave(ctx, leaveright.BulkSaveRequest{
			Items: []leaveright.LeaveRightItem{{Level: "p3", Vacation: 10, Business: 3, Sick: 30}},
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Items, 3)
		assert.Zero(t, resp.Deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - only listed ids are deleted", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := newFakeRepo(p1, p2)
		svc := leaveright.NewService(db, repo)

		expectTx(t, mock, true)
		resp, err := svc.BulkSave(ctx, leaveright.BulkSaveRequest{
			DeletedIDs: []string{p1.ID.String()},
		})

		assert.NoError(t, err)
		assert.EqualValues(t, 1, resp.Deleted)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, "P2", resp.Items[0].Level)
	})

	t.Run("success - existing level is overwritten", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := newFakeRepo(p1)
		svc := leaveright.NewService(db, repo)

		inactive := false
		expectTx(t, mock, true)
		_, err := svc.BulkSave(ctx, leaveright.BulkSaveRequest{
			Items: []leaveright.LeaveRightItem{{Level: "P1", Vacation: 7, Active: &inactive}},
		})

		assert.NoError(t, err)
		got := repo.rows[p1.ID.String()]
		assert.Equal(t, 7, got.Vacation)
		assert.False(t, got.Active)
	})

	t.Run("negative - duplicate level in payload", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		svc := leaveright.NewService(db, newFakeRepo())

		_, err := svc.BulkSave(ctx, leaveright.BulkSaveRequest{
			Items: []leaveright.LeaveRightItem{{Level: "P1"}, {Level: "p1"}},
		})

		assert.ErrorIs(t, err, leaverighterrors.ErrDuplicateLevelInPayload)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - unique violation rolls back", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := newFakeRepo()
		repo.upsertErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_leave_right_level"}
		svc := leaveright.NewService(db, repo)

		expectTx(t, mock, false)
		_, err := svc.BulkSave(ctx, leaveright.BulkSaveRequest{
			Items: []leaveright.LeaveRightItem{{Level: "P9"}},
		})

		assert.ErrorIs(t, err, leaverighterrors.ErrLevelAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
