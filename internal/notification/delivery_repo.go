package notification

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=delivery_repo.go -destination=mock/delivery_repo_mock.go -package=mock
type DeliveryRepository interface {
	Create(ctx context.Context, log *DeliveryLog) error
	ListByRun(ctx context.Context, companyID string, runID string) ([]DeliveryLog, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, log *DeliveryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *deliveryRepository) ListByRun(ctx context.Context, companyID string, runID string) ([]DeliveryLog, error) {
	var logs []DeliveryLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_run_id = ?", runID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
