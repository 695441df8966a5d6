package payrollrun

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/payslip"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=run_repo.go -destination=mock/run_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, run *PayrollRun, slips []payslip.PaySlip) error
	FindByPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*PayrollRun, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]PayrollRun, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error)
	ListPayslips(ctx context.Context, companyID string, runID string) ([]payslip.PaySlip, error)
	FindPayslip(ctx context.Context, companyID string, runID string, payslipID string) (*payslip.PaySlip, error)
	UpdateStatus(ctx context.Context, run *PayrollRun) error
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

// Create persists the run, its payslips, and their line items. It goes
// through database/sql rather than gorm so the writes join the
// caller's transaction alongside the outbox insert.
func (r *repository) Create(ctx context.Context, run *PayrollRun, slips []payslip.PaySlip) error {
	exec := r.execer()

	const runQuery = `
        INSERT INTO payroll_runs (
            id, company_id, period_start, period_end, pay_date, status,
            employee_count, total_gross, total_net,
            total_epf_employee, total_epf_employer, total_etf, total_paye,
            created_by, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
    `
	if _, err := exec.ExecContext(
		ctx, runQuery,
		run.ID, run.CompanyID, run.PeriodStart, run.PeriodEnd, run.PayDate, run.Status,
		run.EmployeeCount, run.TotalGross, run.TotalNet,
		run.TotalEPFEmployee, run.TotalEPFEmployer, run.TotalETF, run.TotalPAYE,
		run.CreatedBy,
	); err != nil {
		return err
	}

	const slipQuery = `
        INSERT INTO payslips (
            id, payroll_run_id, company_id, employee_id,
            employee_name, employee_number, department_name, epf_number, bank_account_no,
            period_start, period_end, working_days, worked_days,
            basic_salary, total_allowances, gross_salary, taxable_income,
            epf_employee, epf_employer, etf_employer, paye_tax,
            total_deductions, net_salary, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
            $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW()
        )
    `
	const lineQuery = `
        INSERT INTO payslip_line_items (
            id, payslip_id, company_id, kind, name, amount,
            is_taxable, is_epf_applicable, source_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
    `

	for _, s := range slips {
		if _, err := exec.ExecContext(
			ctx, slipQuery,
			s.ID, s.PayrollRunID, s.CompanyID, s.EmployeeID,
			s.EmployeeName, s.EmployeeNumber, s.DepartmentName, s.EPFNumber, s.BankAccountNo,
			s.PeriodStart, s.PeriodEnd, s.WorkingDays, s.WorkedDays,
			s.BasicSalary, s.TotalAllowances, s.GrossSalary, s.TaxableIncome,
			s.EPFEmployee, s.EPFEmployer, s.ETFEmployer, s.PAYETax,
			s.TotalDeductions, s.NetSalary,
		); err != nil {
			return err
		}

		for _, item := range s.LineItems {
			if _, err := exec.ExecContext(
				ctx, lineQuery,
				item.ID, item.PayslipID, item.CompanyID, item.Kind, item.Name, item.Amount,
				item.IsTaxable, item.IsEPFApplicable, item.SourceID,
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// FindByPeriod returns nil without error when no run exists, so the
// service can use it as a pre-commit duplicate check.
func (r *repository) FindByPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period_start = ? AND period_end = ?", periodStart, periodEnd).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period_start DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) ListPayslips(ctx context.Context, companyID string, runID string) ([]payslip.PaySlip, error) {
	var slips []payslip.PaySlip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_run_id = ?", runID).
		Preload("LineItems").
		Order("employee_number ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindPayslip(ctx context.Context, companyID string, runID string, payslipID string) (*payslip.PaySlip, error) {
	var slip payslip.PaySlip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_run_id = ?", runID).
		Preload("LineItems").
		First(&slip, "id = ?", payslipID).Error
	return &slip, err
}

func (r *repository) UpdateStatus(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Where("id = ? AND company_id = ?", run.ID, run.CompanyID).
		Updates(map[string]any{
			"status":      run.Status,
			"approved_by": run.ApprovedBy,
			"approved_at": run.ApprovedAt,
			"paid_at":     run.PaidAt,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
