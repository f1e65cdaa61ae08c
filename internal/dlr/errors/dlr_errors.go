package dlrerrors

import (
	"net/http"

	"github.com/NicBab/x-tech-app-server/internal/shared/apperror"
)

var (
	ErrDLRNotFound = apperror.New(
		apperror.CodeNotFound,
		"dlr not found",
		http.StatusNotFound,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only DRAFT dlrs can be edited or deleted",
		http.StatusConflict,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"jobNumber, date and userId are required",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"user does not exist",
		http.StatusBadRequest,
	)
	ErrUserIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"userId is required for non-admin listing",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRelationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid invoice or purchase order id",
		http.StatusBadRequest,
	)
	ErrRelationNotFound = apperror.New(
		apperror.CodeNotFound,
		"related invoice or purchase order not found",
		http.StatusNotFound,
	)
	ErrDuplicateDLRNumber = apperror.New(
		apperror.CodeConflict,
		"duplicate DLR number",
		http.StatusConflict,
	)
	ErrInvalidOtherExpenses = apperror.New(
		apperror.CodeInvalidInput,
		"otherExpenses must be a string or a JSON value",
		http.StatusBadRequest,
	)
	ErrCustomerRequired = apperror.New(
		apperror.CodeInvalidInput,
		"customer is required to submit a dlr",
		http.StatusBadRequest,
	)
	ErrTotalHoursRequired = apperror.New(
		apperror.CodeInvalidInput,
		"totalHours must be greater than zero to submit a dlr",
		http.StatusBadRequest,
	)
)
