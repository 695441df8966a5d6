package payrollrun

import (
	"time"

	"go-payroll/internal/payslip"
)

type SetPeriodRequest struct {
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	Year    int    `json:"year" binding:"required,min=2000,max=2100"`
	PayDate string `json:"pay_date" binding:"required"`
}

type SelectEmployeesRequest struct {
	EmployeeIDs []string `json:"employee_ids" binding:"required,dive,uuid"`
}

type ToggleEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type WizardResponse struct {
	ID                  string   `json:"id"`
	Step                Step     `json:"step"`
	Month               int      `json:"month,omitempty"`
	Year                int      `json:"year,omitempty"`
	PayDate             *string  `json:"pay_date,omitempty"`
	SelectedEmployeeIDs []string `json:"selected_employee_ids,omitempty"`
	Revision            uint64   `json:"revision"`
}

type EligibleEmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	EmployeeNumber string  `json:"employee_number"`
	DepartmentName *string `json:"department_name,omitempty"`
	BasicSalary    int64   `json:"basic_salary"`
}

// PreviewResponse carries the freshly derived figures for the review
// step. Revision identifies the wizard state the preview was computed
// from; a mismatch on the server means the preview was superseded.
type PreviewResponse struct {
	WizardID string            `json:"wizard_id"`
	Revision uint64            `json:"revision"`
	Totals   RunTotals         `json:"totals"`
	Payslips []payslip.PaySlip `json:"payslips"`
}

type RunResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PayDate     string `json:"pay_date"`
	Status      string `json:"status"`

	EmployeeCount    int   `json:"employee_count"`
	TotalGross       int64 `json:"total_gross"`
	TotalNet         int64 `json:"total_net"`
	TotalEPFEmployee int64 `json:"total_epf_employee"`
	TotalEPFEmployer int64 `json:"total_epf_employer"`
	TotalETF         int64 `json:"total_etf"`
	TotalPAYE        int64 `json:"total_paye"`

	CreatedBy  string  `json:"created_by"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	PaidAt     *string `json:"paid_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type RunDetailResponse struct {
	RunResponse
	Payslips []payslip.PaySlip `json:"payslips"`
}

func mapWizardResponse(w *Wizard) WizardResponse {
	resp := WizardResponse{
		ID:                  w.ID,
		Step:                w.Step,
		Month:               w.Month,
		Year:                w.Year,
		SelectedEmployeeIDs: w.SelectedEmployeeIDs,
		Revision:            w.Revision,
	}
	if w.PayDate != nil {
		v := w.PayDate.Format("2006-01-02")
		resp.PayDate = &v
	}
	return resp
}

func mapRunResponse(run PayrollRun) RunResponse {
	resp := RunResponse{
		ID:               run.ID.String(),
		CompanyID:        run.CompanyID.String(),
		PeriodStart:      run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        run.PeriodEnd.Format("2006-01-02"),
		PayDate:          run.PayDate.Format("2006-01-02"),
		Status:           run.Status,
		EmployeeCount:    run.EmployeeCount,
		TotalGross:       run.TotalGross,
		TotalNet:         run.TotalNet,
		TotalEPFEmployee: run.TotalEPFEmployee,
		TotalEPFEmployer: run.TotalEPFEmployer,
		TotalETF:         run.TotalETF,
		TotalPAYE:        run.TotalPAYE,
		CreatedBy:        run.CreatedBy.String(),
		CreatedAt:        run.CreatedAt.Format(time.RFC3339),
	}

	if run.ApprovedBy != nil {
		v := run.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if run.ApprovedAt != nil {
		v := run.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if run.PaidAt != nil {
		v := run.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}

	return resp
}

func mapRunListResponse(runs []PayrollRun) []RunResponse {
	resp := make([]RunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunResponse(run)
	}
	return resp
}
