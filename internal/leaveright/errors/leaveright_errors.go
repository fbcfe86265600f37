package leaverighterrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrLeaveRightNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave right not found",
		http.StatusNotFound,
	)
	ErrLevelAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Leave right for this level already exists",
		http.StatusConflict,
	)
	ErrDuplicateLevelInPayload = apperror.New(
		apperror.CodeValidation,
		"Each level may appear only once per save",
		http.StatusBadRequest,
	)
)
