package employee

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	ListActive(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListActive returns the employees eligible for a payroll run. Only
// active employees qualify; inactive and terminated are excluded at
// the query level.
func (r *repository) ListActive(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive).
		Preload("Department").
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Preload("Department").
		Find(&employees).Error
	return employees, err
}
