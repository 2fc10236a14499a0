package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/tanish1120/hrms-lite-backend/internal/employee/errors"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case ConstraintEmployeeID:
			return apperror.WithCause(employeeerrors.ErrEmployeeIDAlreadyExists, err)
		case ConstraintEmail:
			return apperror.WithCause(employeeerrors.ErrEmailAlreadyExists, err)
		default:
			return apperror.WithCause(employeeerrors.ErrEmployeeConflict, err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, ConstraintEmployeeID):
			return apperror.WithCause(employeeerrors.ErrEmployeeIDAlreadyExists, err)
		case strings.Contains(errMsg, ConstraintEmail):
			return apperror.WithCause(employeeerrors.ErrEmailAlreadyExists, err)
		default:
			return apperror.WithCause(employeeerrors.ErrEmployeeConflict, err)
		}
	}

	return err
}
