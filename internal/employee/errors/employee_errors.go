package employeeerrors

import (
	"net/http"

	"go-nippo/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrDuplicateCode = apperror.New(
		apperror.CodeDuplicate,
		"An employee with the same code already exists",
		http.StatusConflict,
	)

	ErrSelfDelete = apperror.New(
		apperror.CodeLoginCheck,
		"You cannot delete your own account",
		http.StatusForbidden,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be ADMIN or GENERAL",
		http.StatusBadRequest,
	)
)
