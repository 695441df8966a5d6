package statutory

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=taxslab_repo.go -destination=mock/taxslab_repo_mock.go -package=mock
type Repository interface {
	GetActiveSlabs(ctx context.Context, companyID string) ([]TaxSlab, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveSlabs(ctx context.Context, companyID string) ([]TaxSlab, error) {
	var slabs []TaxSlab
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Order("min_income ASC").
		Find(&slabs).Error
	return slabs, err
}
