package attendance

import (
	"errors"

	attendanceerrors "github.com/tanish1120/hrms-lite-backend/internal/attendance/errors"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	// The owning employee disappeared between the existence check and the insert.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return apperror.WithCause(attendanceerrors.ErrEmployeeNotFound, err)
	}

	return err
}
