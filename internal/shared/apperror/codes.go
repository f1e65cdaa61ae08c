package apperror

// Stable machine-readable codes carried in the error envelope. Clients
// branch on these, so existing values never change meaning.
const (
	CodeInvalidInput = "INVALID_INPUT" // malformed or missing request fields
	CodeUnauthorized = "UNAUTHORIZED"  // missing or bad credentials
	CodeForbidden    = "FORBIDDEN"     // authenticated but not allowed
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"      // duplicate key, concurrent writer
	CodeInvalidState = "INVALID_STATE" // record lifecycle forbids the operation

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
