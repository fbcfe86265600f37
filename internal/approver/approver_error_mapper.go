package approver

import (
	"errors"

	approvererrors "go-leave/internal/approver/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvererrors.ErrApproverNotFound
	}
	if database.IsUniqueViolation(err, "uq_approver_user") {
		return approvererrors.ErrApproverAlreadyExists
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Storage(err)
}
