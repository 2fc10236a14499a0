package employeeerrors

import (
	"net/http"

	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusBadRequest,
	)
	ErrEmployeeIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusBadRequest,
	)
	// Returned when the store rejects an insert that passed the pre-checks
	// and the violated constraint cannot be identified.
	ErrEmployeeConflict = apperror.New(
		apperror.CodeConflict,
		"Employee with given email or employee_id already exists",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)
)
