package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

// Employee is owned by the employee-management module; the payroll
// engine reads it and never writes. Bank and EPF reference fields are
// pass-through display data.
type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid"`
	Department       *DepartmentRef
	FullName         string    `gorm:"type:varchar(150);not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex"`
	EmployeeNumber   string    `gorm:"type:varchar(30);not null"`
	BasicSalary      int64     `gorm:"type:bigint;not null;default:0"`
	EmploymentStatus string    `gorm:"type:varchar(20);not null;default:'active';index"`
	EPFNumber        *string   `gorm:"type:varchar(50)"`
	BankName         *string   `gorm:"type:varchar(100)"`
	BankBranch       *string   `gorm:"type:varchar(100)"`
	BankAccountNo    *string   `gorm:"type:varchar(50)"`
	HireDate         time.Time `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}
