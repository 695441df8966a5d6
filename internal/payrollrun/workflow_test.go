package payrollrun_test

import (
	"testing"
	"time"

	"go-payroll/internal/payrollrun"
	payrollrunerrors "go-payroll/internal/payrollrun/errors"

	"github.com/stretchr/testify/assert"
)

func wizardAtEmployees(t *testing.T) *payrollrun.Wizard {
	t.Helper()
	w := payrollrun.NewWizard("0d4f3b52-5a7a-4f2f-9f43-0a4ac18a8d11")
	assert.NoError(t, w.SetPeriod(7, 2026, time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, w.Next())
	return w
}

func TestWizard_HappyPath(t *testing.T) {
	w := payrollrun.NewWizard("0d4f3b52-5a7a-4f2f-9f43-0a4ac18a8d11")
	assert.Equal(t, payrollrun.StepSelectingPeriod, w.Step)

	assert.NoError(t, w.SetPeriod(7, 2026, time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, w.Next())
	assert.Equal(t, payrollrun.StepSelectingEmployees, w.Step)

	assert.NoError(t, w.SelectEmployees([]string{"e1", "e2"}))
	assert.NoError(t, w.Next())
	assert.Equal(t, payrollrun.StepReviewing, w.Step)

	assert.NoError(t, w.Next())
	assert.Equal(t, payrollrun.StepConfirming, w.Step)

	assert.NoError(t, w.MarkCommitted())
	assert.Equal(t, payrollrun.StepCommitted, w.Step)
}

func TestWizard_PeriodValidation(t *testing.T) {
	w := payrollrun.NewWizard("c1")
	payDate := time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, w.SetPeriod(0, 2026, payDate), payrollrunerrors.ErrInvalidPeriod)
	assert.ErrorIs(t, w.SetPeriod(13, 2026, payDate), payrollrunerrors.ErrInvalidPeriod)
	assert.ErrorIs(t, w.SetPeriod(7, 1999, payDate), payrollrunerrors.ErrInvalidPeriod)
	assert.ErrorIs(t, w.SetPeriod(7, 2026, time.Time{}), payrollrunerrors.ErrInvalidPayDate)

	// Cannot advance before a period is chosen.
	assert.ErrorIs(t, w.Next(), payrollrunerrors.ErrInvalidPeriod)
}

func TestWizard_PeriodBounds(t *testing.T) {
	w := payrollrun.NewWizard("c1")
	assert.NoError(t, w.SetPeriod(2, 2028, time.Date(2028, 2, 25, 0, 0, 0, 0, time.UTC)))

	start, end := w.PeriodBounds()
	assert.Equal(t, time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), end)
}

func TestWizard_RequiresEmployeeSelection(t *testing.T) {
	w := wizardAtEmployees(t)

	assert.ErrorIs(t, w.Next(), payrollrunerrors.ErrNoEmployeesSelected)

	assert.NoError(t, w.SelectEmployees([]string{"e1"}))
	assert.NoError(t, w.ToggleEmployee("e1"))
	assert.ErrorIs(t, w.Next(), payrollrunerrors.ErrNoEmployeesSelected)
}

func TestWizard_ToggleEmployee(t *testing.T) {
	w := wizardAtEmployees(t)

	assert.NoError(t, w.SelectEmployees([]string{"e1", "e2", "e1"}))
	assert.Equal(t, []string{"e1", "e2"}, w.SelectedEmployeeIDs)

	assert.NoError(t, w.ToggleEmployee("e2"))
	assert.Equal(t, []string{"e1"}, w.SelectedEmployeeIDs)

	assert.NoError(t, w.ToggleEmployee("e3"))
	assert.Equal(t, []string{"e1", "e3"}, w.SelectedEmployeeIDs)
}

func TestWizard_AdjacentOnlyTransitions(t *testing.T) {
	w := wizardAtEmployees(t)

	// Selection operations are rejected off their home step.
	assert.NoError(t, w.SelectEmployees([]string{"e1"}))
	assert.NoError(t, w.Next())
	assert.ErrorIs(t, w.ToggleEmployee("e2"), payrollrunerrors.ErrWizardStep)
	assert.ErrorIs(t, w.SetPeriod(8, 2026, time.Now()), payrollrunerrors.ErrWizardStep)

	// Confirming only exits through MarkCommitted.
	assert.NoError(t, w.Next())
	assert.ErrorIs(t, w.Next(), payrollrunerrors.ErrWizardStep)
	assert.NoError(t, w.MarkCommitted())

	// Committed is terminal.
	assert.ErrorIs(t, w.Next(), payrollrunerrors.ErrWizardStep)
	assert.ErrorIs(t, w.Back(), payrollrunerrors.ErrWizardStep)
	assert.ErrorIs(t, w.MarkCommitted(), payrollrunerrors.ErrWizardStep)
}

func TestWizard_BackDiscardsLaterStepData(t *testing.T) {
	w := wizardAtEmployees(t)
	assert.NoError(t, w.SelectEmployees([]string{"e1", "e2"}))
	assert.NoError(t, w.Next())

	// Reviewing -> SelectingEmployees keeps the selection.
	assert.NoError(t, w.Back())
	assert.Equal(t, payrollrun.StepSelectingEmployees, w.Step)
	assert.Equal(t, []string{"e1", "e2"}, w.SelectedEmployeeIDs)

	// SelectingEmployees -> SelectingPeriod clears the selection but
	// keeps the chosen period.
	assert.NoError(t, w.Back())
	assert.Equal(t, payrollrun.StepSelectingPeriod, w.Step)
	assert.Empty(t, w.SelectedEmployeeIDs)
	assert.Equal(t, 7, w.Month)
	assert.NotNil(t, w.PayDate)

	// Back off the first step is invalid.
	assert.ErrorIs(t, w.Back(), payrollrunerrors.ErrWizardStep)
}

func TestWizard_RevisionIncrementsOnMutation(t *testing.T) {
	w := payrollrun.NewWizard("c1")
	assert.Zero(t, w.Revision)

	assert.NoError(t, w.SetPeriod(7, 2026, time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)))
	afterPeriod := w.Revision
	assert.Positive(t, afterPeriod)

	assert.NoError(t, w.Next())
	assert.NoError(t, w.SelectEmployees([]string{"e1"}))
	assert.Greater(t, w.Revision, afterPeriod)

	// Rejected operations leave the revision untouched.
	before := w.Revision
	assert.Error(t, w.SetPeriod(8, 2026, time.Now()))
	assert.Equal(t, before, w.Revision)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, payrollrun.CanTransition(payrollrun.StatusPendingApproval, payrollrun.StatusApproved))
	assert.True(t, payrollrun.CanTransition(payrollrun.StatusApproved, payrollrun.StatusPaid))

	assert.False(t, payrollrun.CanTransition(payrollrun.StatusPendingApproval, payrollrun.StatusPaid))
	assert.False(t, payrollrun.CanTransition(payrollrun.StatusPaid, payrollrun.StatusApproved))
	assert.False(t, payrollrun.CanTransition(payrollrun.StatusPaid, ""))
}
