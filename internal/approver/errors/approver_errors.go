package approvererrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrApproverNotFound = apperror.New(
		apperror.CodeNotFound,
		"Approver not found",
		http.StatusNotFound,
	)
	ErrApproverAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User is already registered as an approver",
		http.StatusConflict,
	)
	ErrNotAnApprover = apperror.New(
		apperror.CodeForbidden,
		"You are not registered as an approver",
		http.StatusForbidden,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"You are not authorized to decide leave for this employee",
		http.StatusForbidden,
	)
	ErrDuplicateUserInPayload = apperror.New(
		apperror.CodeValidation,
		"Each user may appear only once per save",
		http.StatusBadRequest,
	)
)
