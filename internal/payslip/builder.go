package payslip

import (
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/loan"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutory"
	statutoryerrors "go-payroll/internal/statutory/errors"
)

// DefaultWorkingDays is the working-day divisor for attendance
// proration when the company has not configured one.
const DefaultWorkingDays = 22

type BuildInput struct {
	Employee    employee.Employee
	PeriodStart time.Time
	PeriodEnd   time.Time

	// WorkingDays <= 0 falls back to DefaultWorkingDays. WorkedDays
	// nil means full attendance.
	WorkingDays int
	WorkedDays  *int

	Components []salarycomponent.SalaryComponent
	// VariableAmounts carries the per-run figures for variable
	// components, keyed by component id.
	VariableAmounts map[string]int64
	// OvertimeAmount is computed upstream and lands as one allowance
	// line when positive.
	OvertimeAmount int64

	Loans        []loan.Deduction
	LoansEnabled bool

	Slabs []statutory.TaxSlab
}

// Builder assembles one employee's payslip. Pure computation: the
// output depends only on the input, so building twice with identical
// inputs yields identical slips (identity and timestamps are assigned
// at persist time, not here).
type Builder struct {
	calc *statutory.Calculator
}

func NewBuilder(calc *statutory.Calculator) *Builder {
	return &Builder{calc: calc}
}

func (b *Builder) Build(in BuildInput) (*PaySlip, error) {
	workingDays := in.WorkingDays
	if workingDays <= 0 {
		workingDays = DefaultWorkingDays
	}

	workedDays := workingDays
	if in.WorkedDays != nil {
		workedDays = *in.WorkedDays
	}
	if workedDays < 0 {
		return nil, statutoryerrors.ErrInvalidAmount
	}

	basic := in.Employee.BasicSalary
	if basic < 0 {
		return nil, statutoryerrors.ErrInvalidAmount
	}

	slip := &PaySlip{
		CompanyID:      in.Employee.CompanyID,
		EmployeeID:     in.Employee.ID,
		EmployeeName:   in.Employee.FullName,
		EmployeeNumber: in.Employee.EmployeeNumber,
		EPFNumber:      in.Employee.EPFNumber,
		BankAccountNo:  in.Employee.BankAccountNo,
		PeriodStart:    in.PeriodStart,
		PeriodEnd:      in.PeriodEnd,
		WorkingDays:    workingDays,
		WorkedDays:     workedDays,
	}
	if in.Employee.Department != nil {
		name := in.Employee.Department.Name
		slip.DepartmentName = &name
	}

	// Zero basic salary is a placeholder entry, not an error: the slip
	// is emitted with every figure at zero.
	if basic == 0 {
		return slip, nil
	}

	// Attendance proration on the daily rate.
	adjustedBasic := statutory.RoundHalfUp(
		float64(basic) * float64(workedDays) / float64(workingDays),
	)
	slip.BasicSalary = adjustedBasic

	allowances, err := b.allowanceLines(in, adjustedBasic)
	if err != nil {
		return nil, err
	}

	var totalAllowances int64
	for _, line := range allowances {
		totalAllowances += line.Amount
	}
	slip.TotalAllowances = totalAllowances
	slip.GrossSalary = adjustedBasic + totalAllowances

	// Statutory contributions always compute on the adjusted basic,
	// never on gross. EPF-applicable allowance flags are carried on
	// the line items but deliberately excluded from the base.
	if slip.EPFEmployee, err = b.calc.EPFEmployee(adjustedBasic); err != nil {
		return nil, err
	}
	if slip.EPFEmployer, err = b.calc.EPFEmployer(adjustedBasic); err != nil {
		return nil, err
	}
	if slip.ETFEmployer, err = b.calc.ETF(adjustedBasic); err != nil {
		return nil, err
	}

	slip.TaxableIncome = slip.GrossSalary - slip.EPFEmployee
	if slip.PAYETax, err = b.calc.PAYE(slip.TaxableIncome, in.Slabs); err != nil {
		return nil, err
	}

	deductions, err := b.deductionLines(in, slip, adjustedBasic)
	if err != nil {
		return nil, err
	}

	var totalDeductions int64
	for _, line := range deductions {
		totalDeductions += line.Amount
	}
	slip.TotalDeductions = totalDeductions
	slip.NetSalary = slip.GrossSalary - totalDeductions

	slip.LineItems = append(allowances, deductions...)

	return slip, nil
}

func (b *Builder) allowanceLines(in BuildInput, adjustedBasic int64) ([]LineItem, error) {
	var lines []LineItem

	for _, c := range in.Components {
		if c.Kind != salarycomponent.KindAllowance {
			continue
		}
		amount, err := componentAmount(c, adjustedBasic, in.VariableAmounts)
		if err != nil {
			return nil, err
		}
		if amount == 0 {
			continue
		}
		sourceID := c.ID.String()
		lines = append(lines, LineItem{
			Kind:            LineKindAllowance,
			Name:            c.Name,
			Amount:          amount,
			IsTaxable:       c.IsTaxable,
			IsEPFApplicable: c.IsEPFApplicable,
			SourceID:        &sourceID,
		})
	}

	if in.OvertimeAmount < 0 {
		return nil, statutoryerrors.ErrInvalidAmount
	}
	if in.OvertimeAmount > 0 {
		lines = append(lines, LineItem{
			Kind:      LineKindAllowance,
			Name:      "Overtime",
			Amount:    in.OvertimeAmount,
			IsTaxable: true,
		})
	}

	return lines, nil
}

func (b *Builder) deductionLines(in BuildInput, slip *PaySlip, adjustedBasic int64) ([]LineItem, error) {
	var lines []LineItem

	if slip.EPFEmployee > 0 {
		lines = append(lines, LineItem{
			Kind:   LineKindDeduction,
			Name:   "EPF (Employee)",
			Amount: slip.EPFEmployee,
		})
	}
	if slip.PAYETax > 0 {
		lines = append(lines, LineItem{
			Kind:   LineKindDeduction,
			Name:   "PAYE Tax",
			Amount: slip.PAYETax,
		})
	}

	// Loan installments are gated by the company feature flag; when
	// disabled, active loans contribute nothing even if present.
	if in.LoansEnabled {
		for _, d := range in.Loans {
			if d.Amount < 0 {
				return nil, statutoryerrors.ErrInvalidAmount
			}
			if d.Amount == 0 {
				continue
			}
			sourceID := d.LoanID
			lines = append(lines, LineItem{
				Kind:     LineKindDeduction,
				Name:     d.LoanType,
				Amount:   d.Amount,
				SourceID: &sourceID,
			})
		}
	}

	for _, c := range in.Components {
		if c.Kind != salarycomponent.KindDeduction {
			continue
		}
		amount, err := componentAmount(c, adjustedBasic, in.VariableAmounts)
		if err != nil {
			return nil, err
		}
		if amount == 0 {
			continue
		}
		sourceID := c.ID.String()
		lines = append(lines, LineItem{
			Kind:     LineKindDeduction,
			Name:     c.Name,
			Amount:   amount,
			SourceID: &sourceID,
		})
	}

	return lines, nil
}

func componentAmount(
	c salarycomponent.SalaryComponent,
	adjustedBasic int64,
	variableAmounts map[string]int64,
) (int64, error) {
	var amount int64
	switch c.Category {
	case salarycomponent.CategoryPercentage:
		if c.Rate < 0 {
			return 0, statutoryerrors.ErrInvalidAmount
		}
		amount = statutory.RoundHalfUp(float64(adjustedBasic) * c.Rate)
	case salarycomponent.CategoryVariable:
		amount = variableAmounts[c.ID.String()]
	default:
		amount = c.Amount
	}

	if amount < 0 {
		return 0, statutoryerrors.ErrInvalidAmount
	}
	return amount, nil
}
