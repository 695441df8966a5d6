package payrollrun

import (
	"time"

	payrollrunerrors "go-payroll/internal/payrollrun/errors"

	"github.com/google/uuid"
)

// Step is one state of the payroll run wizard.
type Step string

const (
	StepSelectingPeriod    Step = "selecting_period"
	StepSelectingEmployees Step = "selecting_employees"
	StepReviewing          Step = "reviewing"
	StepConfirming         Step = "confirming"
	StepCommitted          Step = "committed"
)

// stepOrder doubles as the transition table: Next and Back only move
// between adjacent entries, and StepCommitted is terminal.
var stepOrder = []Step{
	StepSelectingPeriod,
	StepSelectingEmployees,
	StepReviewing,
	StepConfirming,
	StepCommitted,
}

func stepIndex(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Wizard is the finite-state machine behind the run creation flow:
// period selection, employee inclusion, calculation review, commit.
// It holds selection state only; payslip figures are always derived
// fresh from the latest inputs, never stored here.
type Wizard struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Step      Step   `json:"step"`

	Month   int        `json:"month,omitempty"`
	Year    int        `json:"year,omitempty"`
	PayDate *time.Time `json:"pay_date,omitempty"`

	SelectedEmployeeIDs []string `json:"selected_employee_ids,omitempty"`

	// Revision increments on every mutation. A preview derived under
	// an older revision is stale and must be discarded in favor of the
	// latest inputs (last-write-wins, no queued backlog).
	Revision uint64 `json:"revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewWizard(companyID string) *Wizard {
	now := time.Now().UTC()
	return &Wizard{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Step:      StepSelectingPeriod,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (w *Wizard) touch() {
	w.Revision++
	w.UpdatedAt = time.Now().UTC()
}

// PeriodBounds returns the calendar month boundaries of the selected
// period.
func (w *Wizard) PeriodBounds() (start, end time.Time) {
	start = time.Date(w.Year, time.Month(w.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// SetPeriod records the pay period. Only callable on the first step;
// later steps must navigate back first so downstream selections are
// discarded deliberately, not silently.
func (w *Wizard) SetPeriod(month, year int, payDate time.Time) error {
	if w.Step != StepSelectingPeriod {
		return payrollrunerrors.ErrWizardStep
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return payrollrunerrors.ErrInvalidPeriod
	}
	if payDate.IsZero() {
		return payrollrunerrors.ErrInvalidPayDate
	}

	w.Month = month
	w.Year = year
	w.PayDate = &payDate
	w.touch()
	return nil
}

// SelectEmployees replaces the inclusion set. The service seeds it
// with every active employee when the step is entered; the caller then
// toggles individuals.
func (w *Wizard) SelectEmployees(ids []string) error {
	if w.Step != StepSelectingEmployees {
		return payrollrunerrors.ErrWizardStep
	}
	w.SelectedEmployeeIDs = dedupe(ids)
	w.touch()
	return nil
}

// ToggleEmployee flips one employee in or out of the run.
func (w *Wizard) ToggleEmployee(id string) error {
	if w.Step != StepSelectingEmployees {
		return payrollrunerrors.ErrWizardStep
	}

	for i, selected := range w.SelectedEmployeeIDs {
		if selected == id {
			w.SelectedEmployeeIDs = append(
				w.SelectedEmployeeIDs[:i],
				w.SelectedEmployeeIDs[i+1:]...,
			)
			w.touch()
			return nil
		}
	}

	w.SelectedEmployeeIDs = append(w.SelectedEmployeeIDs, id)
	w.touch()
	return nil
}

// Next advances to the adjacent step after validating the current one.
func (w *Wizard) Next() error {
	idx := stepIndex(w.Step)
	if idx < 0 || w.Step == StepCommitted {
		return payrollrunerrors.ErrWizardStep
	}

	switch w.Step {
	case StepSelectingPeriod:
		if w.Month == 0 || w.PayDate == nil {
			return payrollrunerrors.ErrInvalidPeriod
		}
	case StepSelectingEmployees:
		if len(w.SelectedEmployeeIDs) == 0 {
			return payrollrunerrors.ErrNoEmployeesSelected
		}
	case StepConfirming:
		// Leaving the confirm step happens through MarkCommitted only,
		// so the commit gate cannot be skipped.
		return payrollrunerrors.ErrWizardStep
	}

	w.Step = stepOrder[idx+1]
	w.touch()
	return nil
}

// Back returns to the adjacent earlier step. Data belonging to steps
// after the target is discarded; earlier selections (like the chosen
// period) survive.
func (w *Wizard) Back() error {
	idx := stepIndex(w.Step)
	if idx <= 0 || w.Step == StepCommitted {
		return payrollrunerrors.ErrWizardStep
	}

	target := stepOrder[idx-1]
	if target == StepSelectingPeriod {
		w.SelectedEmployeeIDs = nil
	}

	w.Step = target
	w.touch()
	return nil
}

// MarkCommitted is the terminal transition, taken by the service after
// the run has been durably persisted.
func (w *Wizard) MarkCommitted() error {
	if w.Step != StepConfirming {
		return payrollrunerrors.ErrWizardStep
	}
	w.Step = StepCommitted
	w.touch()
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
