package salarycomponent

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindAllowance = "allowance"
	KindDeduction = "deduction"
)

const (
	CategoryFixed      = "fixed"
	CategoryPercentage = "percentage"
	CategoryVariable   = "variable"
)

// SalaryComponent is configuration owned by the settings module and
// consumed read-only by the payslip builder. Fixed components carry an
// amount, percentage components a rate on adjusted basic, variable
// components are entered per run.
type SalaryComponent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(120);not null"`
	Kind            string    `gorm:"type:varchar(20);not null"`
	Category        string    `gorm:"type:varchar(20);not null;default:'fixed'"`
	Amount          int64     `gorm:"type:bigint;not null;default:0"`
	Rate            float64   `gorm:"type:numeric(6,4);not null;default:0"`
	IsTaxable       bool      `gorm:"not null;default:true"`
	IsEPFApplicable bool      `gorm:"not null;default:false"`
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}
