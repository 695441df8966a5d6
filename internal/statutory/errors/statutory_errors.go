package statutoryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"monetary amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidTaxTable = apperror.New(
		apperror.CodeInvalidState,
		"tax slab configuration is malformed",
		http.StatusUnprocessableEntity,
	)
)
