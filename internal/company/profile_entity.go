package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string    `gorm:"type:varchar(150);not null"`
	Email string    `gorm:"type:varchar(255);index"`
	// WorkingDays is the proration divisor for a full month of work.
	WorkingDays int  `gorm:"not null;default:22"`
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Profile *StatutoryProfile `gorm:"foreignKey:CompanyID"`
}

func (Company) TableName() string {
	return "companies"
}

// StatutoryProfile holds the registration and bank fields a company
// must complete before a payroll run may be committed.
type StatutoryProfile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EPFRegistrationNo string    `gorm:"type:varchar(100)"`
	ETFRegistrationNo string    `gorm:"type:varchar(100)"`
	TaxIdentification string    `gorm:"type:varchar(100)"`
	BankName          string    `gorm:"type:varchar(100)"`
	BankBranch        string    `gorm:"type:varchar(100)"`
	BankAccountNo     string    `gorm:"type:varchar(50)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (StatutoryProfile) TableName() string {
	return "company_statutory_profiles"
}

// MissingFields lists the required statutory fields that are still
// empty, in a stable order so the commit gate can report them.
func (p *StatutoryProfile) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"epf_registration_no", p.EPFRegistrationNo},
		{"etf_registration_no", p.ETFRegistrationNo},
		{"tax_identification", p.TaxIdentification},
		{"bank_name", p.BankName},
		{"bank_branch", p.BankBranch},
		{"bank_account_no", p.BankAccountNo},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
