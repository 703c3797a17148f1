package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// Business-rule outcomes surfaced to the form layer
	CodeHalfSize   = "HALFSIZE_ERROR"
	CodeRangeCheck = "RANGECHECK_ERROR"
	CodeDuplicate  = "DUPLICATE_ERROR"
	CodeDateCheck  = "DATECHECK_ERROR"
	CodeLoginCheck = "LOGINCHECK_ERROR"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
