package salarycomponent

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=component_repo.go -destination=mock/component_repo_mock.go -package=mock
type Repository interface {
	ListActive(ctx context.Context, companyID string) ([]SalaryComponent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context, companyID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&components).Error
	return components, err
}
