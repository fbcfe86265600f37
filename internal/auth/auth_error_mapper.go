package auth

import (
	"errors"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}
	if database.IsUniqueViolation(err, "uq_user_email") {
		return autherrors.ErrEmailAlreadyRegistered
	}
	if database.IsUniqueViolation(err, "uq_user_employee") {
		return autherrors.ErrEmployeeAlreadyLinked
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Storage(err)
}
