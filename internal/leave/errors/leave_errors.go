package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeValidation,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeValidation,
		"employee_id is required",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeValidation,
		"invalid leave kind",
		http.StatusBadRequest,
	)
	ErrInvalidSession = apperror.New(
		apperror.CodeValidation,
		"session must be FULL, AM or PM",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrCrossYearRange = apperror.New(
		apperror.CodeValidation,
		"a leave request must start and end in the same calendar year",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeValidation,
		"the requested range contains no working days",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeValidation,
		"decision must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrInvalidHRAction = apperror.New(
		apperror.CodeValidation,
		"action must be confirm or unconfirm",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeOverlap,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrQuotaExceeded = apperror.New(
		apperror.CodeQuotaExceeded,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrSubmitForOthers = apperror.New(
		apperror.CodeForbidden,
		"you may only submit leave for yourself",
		http.StatusForbidden,
	)
	ErrSelfDecision = apperror.New(
		apperror.CodeForbidden,
		"you may not decide your own leave request",
		http.StatusForbidden,
	)
	ErrReadOthers = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own leave",
		http.StatusForbidden,
	)
)
