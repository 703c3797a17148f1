package reporterrors

import (
	"net/http"

	"go-nippo/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Report not found",
		http.StatusNotFound,
	)

	ErrDuplicateDate = apperror.New(
		apperror.CodeDateCheck,
		"A report for this date already exists",
		http.StatusConflict,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Report date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
