package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryStatusSent    = "sent"
	DeliveryStatusFailed  = "failed"
	DeliveryStatusSkipped = "skipped"
)

// DeliveryLog records the outcome of one payslip email attempt. The
// log is append-only; a redelivery writes a new row.
type DeliveryLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;not null;index" json:"payroll_run_id"`
	PayslipID    uuid.UUID `gorm:"type:uuid;not null" json:"payslip_id"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null" json:"employee_id"`
	Recipient    string    `gorm:"type:varchar(255)" json:"recipient"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"`
	Error        *string   `gorm:"type:varchar(500)" json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (DeliveryLog) TableName() string {
	return "payslip_delivery_logs"
}
