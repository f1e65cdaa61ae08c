package usererrors

import (
	"net/http"

	"github.com/NicBab/x-tech-app-server/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserHasRecords = apperror.New(
		apperror.CodeConflict,
		"user still owns reports or time entries",
		http.StatusConflict,
	)
)
