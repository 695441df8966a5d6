package loan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive  = "active"
	StatusSettled = "settled"
)

type Loan struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;index"`
	LoanType         string    `gorm:"type:varchar(50);not null"`
	PrincipalAmount  int64     `gorm:"type:bigint;not null"`
	MonthlyDeduction int64     `gorm:"type:bigint;not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'active';index"`
	StartDate        time.Time `gorm:"type:date;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Loan) TableName() string {
	return "loans"
}

// Deduction is the slice of a loan that lands on one payslip.
type Deduction struct {
	LoanID   string
	LoanType string
	Amount   int64
}
