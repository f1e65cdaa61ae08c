package timeentry

import (
	"errors"

	"github.com/NicBab/x-tech-app-server/internal/shared/apperror"
	timeentryerrors "github.com/NicBab/x-tech-app-server/internal/timeentry/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage failures into domain errors.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrGroupNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503: the group references a user that no longer exists.
		if pgErr.Code == "23503" {
			return timeentryerrors.ErrUserNotFound
		}
	}

	return err
}
