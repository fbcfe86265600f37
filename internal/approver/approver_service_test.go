package approver_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leave/internal/approver"
	approvererrors "go-leave/internal/approver/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	approvers []approver.Approver
	created   []approver.Approver
	updated   []approver.Approver
}

func (f *fakeRepo) WithTx(*sql.Tx) approver.Repository { return f }

func (f *fakeRepo) FindAll(context.Context) ([]approver.Approver, error) {
	return f.approvers, nil
}

func (f *fakeRepo) FindByUserID(_ context.Context, userID string) (*approver.Approver, error) {
	for _, a := range f.approvers {
		if a.UserID.String() == userID {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Create(_ context.Context, a *approver.Approver) error {
	f.created = append(f.created, *a)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, a *approver.Approver) error {
	f.updated = append(f.updated, *a)
	return nil
}

func (f *fakeRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	return int64(len(ids)), nil
}

func TestApproverService_Authorize(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := &fakeRepo{approvers: []approver.Approver{{ID: uuid.New(), UserID: userID, Org: strPtr("HQ")}}}
	svc := approver.NewService(nil, repo)

	t.Run("success", func(t *testing.T) {
		err := svc.Authorize(ctx, userID.String(), approver.Target{EmployeeID: uuid.NewString(), Org: "HQ"})
		assert.NoError(t, err)
	})

	t.Run("negative - out of scope", func(t *testing.T) {
		err := svc.Authorize(ctx, userID.String(), approver.Target{EmployeeID: uuid.NewString(), Org: "Branch"})
		assert.ErrorIs(t, err, approvererrors.ErrOutOfScope)
	})

	t.Run("negative - not an approver", func(t *testing.T) {
		err := svc.Authorize(ctx, uuid.NewString(), approver.Target{Org: "HQ"})
		assert.ErrorIs(t, err, approvererrors.ErrNotAnApprover)
	})
}

func TestApproverService_BulkSave(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{}
		svc := approver.NewService(db, repo)
		existingID := uuid.NewString()
		empID := uuid.NewString()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.BulkSave(ctx, approver.BulkSaveRequest{
			Items: []approver.ApproverItem{
				{UserID: uuid.NewString(), Name: "New", Org: strPtr("HQ")},
				{ID: existingID, UserID: uuid.NewString(), Name: "Existing", EmployeeIDs: []string{empID}},
			},
			DeletedIDs: []string{uuid.NewString()},
		})

		assert.NoError(t, err)
		assert.EqualValues(t, 1, resp.Deleted)
		assert.Len(t, repo.created, 1)
		if assert.Len(t, repo.updated, 1) {
			assert.Equal(t, existingID, repo.updated[0].ID.String())
			assert.Equal(t, empID, repo.updated[0].Assignments[0].EmployeeID.String())
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - duplicate user", func(t *testing.T) {
		svc := approver.NewService(nil, &fakeRepo{})
		uid := uuid.NewString()

		_, err := svc.BulkSave(ctx, approver.BulkSaveRequest{
			Items: []approver.ApproverItem{{UserID: uid, Name: "A"}, {UserID: uid, Name: "B"}},
		})

		assert.ErrorIs(t, err, approvererrors.ErrDuplicateUserInPayload)
	})
}
