package company

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, companyID string) (*Company, error)
	GetStatutoryProfile(ctx context.Context, companyID string) (*StatutoryProfile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, companyID string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).
		First(&c, "id = ?", companyID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetStatutoryProfile returns the company's statutory profile, or an
// empty profile when none has been saved yet so the completeness check
// reports every field as missing instead of erroring.
func (r *repository) GetStatutoryProfile(ctx context.Context, companyID string) (*StatutoryProfile, error) {
	var profile StatutoryProfile
	err := r.db.WithContext(ctx).
		First(&profile, "company_id = ?", companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StatutoryProfile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
