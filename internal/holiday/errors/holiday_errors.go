package holidayerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"Holiday not found",
		http.StatusNotFound,
	)
	ErrHolidayAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A holiday with the same date and title already exists",
		http.StatusConflict,
	)
	ErrInvalidHolidayDate = apperror.New(
		apperror.CodeValidation,
		"Holiday date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidCalendar = apperror.New(
		apperror.CodeValidation,
		"Calendar file could not be parsed",
		http.StatusBadRequest,
	)
	ErrCalendarUnavailable = apperror.New(
		apperror.CodeValidation,
		"Calendar URL could not be fetched",
		http.StatusBadRequest,
	)
)
