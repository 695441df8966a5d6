package loan

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	GetActiveDeductions(ctx context.Context, companyID string, employeeIDs []string) (map[string][]Deduction, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveDeductions(
	ctx context.Context,
	companyID string,
	employeeIDs []string,
) (map[string][]Deduction, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", StatusActive).
		Order("start_date ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}

	deductions := make(map[string][]Deduction)
	for _, l := range loans {
		eid := l.EmployeeID.String()
		deductions[eid] = append(deductions[eid], Deduction{
			LoanID:   l.ID.String(),
			LoanType: l.LoanType,
			Amount:   l.MonthlyDeduction,
		})
	}

	return deductions, nil
}
