package payslip

import (
	"time"

	"github.com/google/uuid"
)

const (
	LineKindAllowance = "allowance"
	LineKindDeduction = "deduction"
)

// PaySlip is the computed artifact for one employee in one run. Rows
// are written once when the run commits and never updated; a new run
// is the only way to recompute.
//
// Invariants: GrossSalary = BasicSalary + TotalAllowances,
// NetSalary = GrossSalary - TotalDeductions,
// TaxableIncome = GrossSalary - EPFEmployee.
type PaySlip struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;not null;index" json:"payroll_run_id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`

	// Display snapshot; payslips stay readable after employee edits.
	EmployeeName   string  `gorm:"type:varchar(150);not null" json:"employee_name"`
	EmployeeNumber string  `gorm:"type:varchar(30);not null" json:"employee_number"`
	DepartmentName *string `gorm:"type:varchar(120)" json:"department_name,omitempty"`
	EPFNumber      *string `gorm:"type:varchar(50)" json:"epf_number,omitempty"`
	BankAccountNo  *string `gorm:"type:varchar(50)" json:"bank_account_no,omitempty"`

	PeriodStart time.Time `gorm:"type:date;not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"type:date;not null" json:"period_end"`
	WorkingDays int       `gorm:"not null" json:"working_days"`
	WorkedDays  int       `gorm:"not null" json:"worked_days"`

	// Amounts in whole currency units, rounded half-up on computation.
	BasicSalary     int64 `gorm:"type:bigint;not null" json:"basic_salary"`
	TotalAllowances int64 `gorm:"type:bigint;not null" json:"total_allowances"`
	GrossSalary     int64 `gorm:"type:bigint;not null" json:"gross_salary"`
	TaxableIncome   int64 `gorm:"type:bigint;not null" json:"taxable_income"`
	EPFEmployee     int64 `gorm:"type:bigint;not null" json:"epf_employee"`
	EPFEmployer     int64 `gorm:"type:bigint;not null" json:"epf_employer"`
	ETFEmployer     int64 `gorm:"type:bigint;not null" json:"etf_employer"`
	PAYETax         int64 `gorm:"type:bigint;not null" json:"paye_tax"`
	TotalDeductions int64 `gorm:"type:bigint;not null" json:"total_deductions"`
	// Net may go negative when deductions exceed gross; the engine
	// surfaces the value instead of clamping.
	NetSalary int64 `gorm:"type:bigint;not null" json:"net_salary"`

	LineItems []LineItem `gorm:"foreignKey:PayslipID" json:"line_items"`

	CreatedAt time.Time `json:"created_at"`
}

func (PaySlip) TableName() string {
	return "payslips"
}

// LineItem is a tagged allowance or deduction row on a payslip.
type LineItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PayslipID       uuid.UUID `gorm:"type:uuid;not null;index" json:"payslip_id"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Kind            string    `gorm:"type:varchar(20);not null" json:"kind"`
	Name            string    `gorm:"type:varchar(120);not null" json:"name"`
	Amount          int64     `gorm:"type:bigint;not null" json:"amount"`
	IsTaxable       bool      `gorm:"not null;default:false" json:"is_taxable"`
	IsEPFApplicable bool      `gorm:"not null;default:false" json:"is_epf_applicable"`
	// SourceID links back to the originating loan or component.
	SourceID  *string   `gorm:"type:varchar(60)" json:"source_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (LineItem) TableName() string {
	return "payslip_line_items"
}
