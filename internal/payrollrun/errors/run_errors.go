package payrollrunerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay period",
		http.StatusBadRequest,
	)
	ErrInvalidPayDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrWizardNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run wizard not found or expired",
		http.StatusNotFound,
	)
	ErrWizardStep = apperror.New(
		apperror.CodeInvalidState,
		"operation not allowed at the current wizard step",
		http.StatusBadRequest,
	)
	ErrNoEmployeesSelected = apperror.New(
		apperror.CodeInvalidState,
		"at least one employee must be selected",
		http.StatusBadRequest,
	)
	ErrEmployeeNotEligible = apperror.New(
		apperror.CodeInvalidInput,
		"employee is not active in this company",
		http.StatusBadRequest,
	)
	ErrPreviewSuperseded = apperror.New(
		apperror.CodeConflict,
		"preview inputs changed while calculating, retry with the latest selection",
		http.StatusConflict,
	)
	ErrIncompleteCompanyProfile = apperror.New(
		apperror.CodeInvalidState,
		"company statutory profile is incomplete",
		http.StatusUnprocessableEntity,
	)
	ErrDuplicateRunForPeriod = apperror.New(
		apperror.CodeConflict,
		"a payroll run already exists for this period",
		http.StatusConflict,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll run status transition",
		http.StatusBadRequest,
	)
)
