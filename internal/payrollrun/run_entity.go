package payrollrun

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft           = "draft"
	StatusProcessing      = "processing"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusPaid            = "paid"
)

// statusTransitions is the forward-only chain a committed run may
// walk. Anything else is rejected.
var statusTransitions = map[string]string{
	StatusDraft:           StatusProcessing,
	StatusProcessing:      StatusPendingApproval,
	StatusPendingApproval: StatusApproved,
	StatusApproved:        StatusPaid,
}

// CanTransition reports whether a run may move from one status to the
// next. Only adjacent forward steps are allowed; committed runs never
// move backwards.
func CanTransition(from, to string) bool {
	return statusTransitions[from] == to
}

// PayrollRun is the atomic, immutable artifact of one committed pay
// period. Its employee set and payslips are frozen on commit; only the
// status walks forward afterwards.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_company_period,unique" json:"company_id"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_company_period,unique" json:"period_start"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_company_period,unique" json:"period_end"`
	PayDate     time.Time `gorm:"type:date;not null" json:"pay_date"`

	Status string `gorm:"type:varchar(20);not null;default:'pending_approval'" json:"status"`

	// Aggregate totals are the exact sums of the run's payslip fields,
	// persisted so lists reconcile without reloading every slip.
	EmployeeCount    int   `gorm:"not null" json:"employee_count"`
	TotalGross       int64 `gorm:"type:bigint;not null" json:"total_gross"`
	TotalNet         int64 `gorm:"type:bigint;not null" json:"total_net"`
	TotalEPFEmployee int64 `gorm:"type:bigint;not null" json:"total_epf_employee"`
	TotalEPFEmployer int64 `gorm:"type:bigint;not null" json:"total_epf_employer"`
	TotalETF         int64 `gorm:"type:bigint;not null" json:"total_etf"`
	TotalPAYE        int64 `gorm:"type:bigint;not null" json:"total_paye"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `gorm:"index" json:"approved_at,omitempty"`
	PaidAt     *time.Time `gorm:"index" json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}
