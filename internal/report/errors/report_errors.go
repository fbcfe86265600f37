package reporterrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidYear    = apperror.New(apperror.CodeValidation, "year must be between 2000 and 2100", http.StatusBadRequest)
	ErrExportGenerate = apperror.New(apperror.CodeInternalError, "failed to generate export", http.StatusInternalServerError)
)
