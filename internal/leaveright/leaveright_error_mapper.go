package leaveright

import (
	"errors"

	leaverighterrors "go-leave/internal/leaveright/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaverighterrors.ErrLeaveRightNotFound
	}
	if database.IsUniqueViolation(err, "") {
		return leaverighterrors.ErrLevelAlreadyExists
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Storage(err)
}
