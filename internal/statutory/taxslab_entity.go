package statutory

import (
	"time"

	"github.com/google/uuid"
)

// TaxSlab is one progressive income-tax band. MaxIncome nil means the
// slab is unbounded; only the last slab of a valid table may be open.
type TaxSlab struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	MinIncome int64     `gorm:"type:bigint;not null"`
	MaxIncome *int64    `gorm:"type:bigint"`
	Rate      float64   `gorm:"type:numeric(6,4);not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaxSlab) TableName() string {
	return "tax_slabs"
}
