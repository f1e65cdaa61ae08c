package timeentryerrors

import (
	"net/http"

	"github.com/NicBab/x-tech-app-server/internal/shared/apperror"
)

var (
	ErrGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only DRAFT time entries can be edited or deleted",
		http.StatusConflict,
	)
	ErrNotSubmitted = apperror.New(
		apperror.CodeInvalidState,
		"only SUBMITTED time entries can be re-submitted",
		http.StatusConflict,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"userId, date, weekEndingDate and jobs are required",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"user does not exist",
		http.StatusBadRequest,
	)
)
