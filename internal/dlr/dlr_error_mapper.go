package dlr

import (
	"errors"
	"strings"

	dlrerrors "github.com/NicBab/x-tech-app-server/internal/dlr/errors"
	"github.com/NicBab/x-tech-app-server/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage-layer failures into the nearest
// domain error. Unique violations on the dlr number become a conflict,
// foreign-key violations a validation error; anything unrecognized stays
// a 500.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dlrerrors.ErrDLRNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return dlrerrors.ErrDuplicateDLRNumber
		case "23503":
			return dlrerrors.ErrRelationNotFound
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		return dlrerrors.ErrDuplicateDLRNumber
	}
	if strings.Contains(msg, "violates foreign key constraint") {
		return dlrerrors.ErrRelationNotFound
	}

	return err
}
