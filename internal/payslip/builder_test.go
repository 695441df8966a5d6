package payslip_test

import (
	"testing"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/loan"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutory"
	statutoryerrors "go-payroll/internal/statutory/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func testSlabs() []statutory.TaxSlab {
	return []statutory.TaxSlab{
		{MinIncome: 0, MaxIncome: int64Ptr(100000), Rate: 0},
		{MinIncome: 100000, MaxIncome: int64Ptr(150000), Rate: 0.06},
		{MinIncome: 150000, MaxIncome: nil, Rate: 0.12},
	}
}

func testEmployee(basic int64) employee.Employee {
	return employee.Employee{
		ID:               uuid.MustParse("55b4a3a1-94d4-4dab-a07e-a6ff62a23f1e"),
		CompanyID:        uuid.MustParse("0d4f3b52-5a7a-4f2f-9f43-0a4ac18a8d11"),
		FullName:         "Nimali Perera",
		EmployeeNumber:   "EMP-000042",
		BasicSalary:      basic,
		EmploymentStatus: employee.StatusActive,
	}
}

func baseInput(basic int64) payslip.BuildInput {
	return payslip.BuildInput{
		Employee:    testEmployee(basic),
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		Slabs:       testSlabs(),
	}
}

func newBuilder() *payslip.Builder {
	return payslip.NewBuilder(statutory.NewCalculator(statutory.DefaultRates()))
}

func TestBuilder_FullAttendance(t *testing.T) {
	builder := newBuilder()

	slip, err := builder.Build(baseInput(110000))

	assert.NoError(t, err)
	assert.Equal(t, int64(110000), slip.BasicSalary)
	assert.Equal(t, payslip.DefaultWorkingDays, slip.WorkingDays)
	assert.Equal(t, payslip.DefaultWorkingDays, slip.WorkedDays)
	assert.Equal(t, int64(110000), slip.GrossSalary)
	assert.Equal(t, int64(8800), slip.EPFEmployee)
	assert.Equal(t, int64(13200), slip.EPFEmployer)
	assert.Equal(t, int64(3300), slip.ETFEmployer)
	// taxable 101200 -> 1200 * 6% = 72
	assert.Equal(t, int64(101200), slip.TaxableIncome)
	assert.Equal(t, int64(72), slip.PAYETax)
	assert.Equal(t, int64(8872), slip.TotalDeductions)
	assert.Equal(t, int64(101128), slip.NetSalary)

	// Invariants hold across the slip.
	assert.Equal(t, slip.GrossSalary, slip.BasicSalary+slip.TotalAllowances)
	assert.Equal(t, slip.NetSalary, slip.GrossSalary-slip.TotalDeductions)
	assert.Equal(t, slip.TaxableIncome, slip.GrossSalary-slip.EPFEmployee)
}

func TestBuilder_AttendanceProration(t *testing.T) {
	builder := newBuilder()

	in := baseInput(88000)
	in.WorkedDays = intPtr(11)

	slip, err := builder.Build(in)

	assert.NoError(t, err)
	assert.Equal(t, int64(44000), slip.BasicSalary)
	assert.Equal(t, 11, slip.WorkedDays)
	assert.Equal(t, 22, slip.WorkingDays)
}

func TestBuilder_Allowances(t *testing.T) {
	builder := newBuilder()
	companyID := uuid.MustParse("0d4f3b52-5a7a-4f2f-9f43-0a4ac18a8d11")
	travelID := uuid.New()
	bonusID := uuid.New()

	in := baseInput(80000)
	in.Components = []salarycomponent.SalaryComponent{
		{
			ID:        travelID,
			CompanyID: companyID,
			Name:      "Travel",
			Kind:      salarycomponent.KindAllowance,
			Category:  salarycomponent.CategoryFixed,
			Amount:    10000,
			IsTaxable: true,
		},
		{
			ID:        uuid.New(),
			CompanyID: companyID,
			Name:      "Attendance Incentive",
			Kind:      salarycomponent.KindAllowance,
			Category:  salarycomponent.CategoryPercentage,
			Rate:      0.05,
		},
		{
			ID:        bonusID,
			CompanyID: companyID,
			Name:      "Spot Bonus",
			Kind:      salarycomponent.KindAllowance,
			Category:  salarycomponent.CategoryVariable,
		},
	}
	in.VariableAmounts = map[string]int64{bonusID.String(): 7500}
	in.OvertimeAmount = 2500

	slip, err := builder.Build(in)

	assert.NoError(t, err)
	// 10000 fixed + 4000 (5% of 80000) + 7500 variable + 2500 overtime
	assert.Equal(t, int64(24000), slip.TotalAllowances)
	assert.Equal(t, int64(104000), slip.GrossSalary)

	var allowanceNames []string
	for _, item := range slip.LineItems {
		if item.Kind == payslip.LineKindAllowance {
			allowanceNames = append(allowanceNames, item.Name)
		}
	}
	assert.Equal(t, []string{"Travel", "Attendance Incentive", "Spot Bonus", "Overtime"}, allowanceNames)

	// EPF stays on adjusted basic even with EPF-applicable allowances.
	assert.Equal(t, int64(6400), slip.EPFEmployee)
}

func TestBuilder_LoanGating(t *testing.T) {
	builder := newBuilder()
	loans := []loan.Deduction{
		{LoanID: uuid.NewString(), LoanType: "Staff Loan", Amount: 5000},
		{LoanID: uuid.NewString(), LoanType: "Festival Advance", Amount: 2500},
	}

	t.Run("loans enabled adds one line per installment", func(t *testing.T) {
		in := baseInput(80000)
		in.Loans = loans
		in.LoansEnabled = true

		slip, err := builder.Build(in)

		assert.NoError(t, err)
		var loanLines []payslip.LineItem
		for _, item := range slip.LineItems {
			if item.SourceID != nil && item.Kind == payslip.LineKindDeduction {
				loanLines = append(loanLines, item)
			}
		}
		assert.Len(t, loanLines, 2)
		assert.Equal(t, int64(5000), loanLines[0].Amount)
	})

	t.Run("loans disabled yields zero loan lines even with data present", func(t *testing.T) {
		in := baseInput(80000)
		in.Loans = loans
		in.LoansEnabled = false

		slip, err := builder.Build(in)

		assert.NoError(t, err)
		for _, item := range slip.LineItems {
			assert.NotEqual(t, "Staff Loan", item.Name)
			assert.NotEqual(t, "Festival Advance", item.Name)
		}
		assert.Equal(t, slip.EPFEmployee, slip.TotalDeductions)
	})
}

func TestBuilder_NegativeNetIsSurfaced(t *testing.T) {
	builder := newBuilder()

	in := baseInput(10000)
	in.Loans = []loan.Deduction{
		{LoanID: uuid.NewString(), LoanType: "Staff Loan", Amount: 15000},
	}
	in.LoansEnabled = true

	slip, err := builder.Build(in)

	assert.NoError(t, err)
	assert.Negative(t, slip.NetSalary)
	assert.Equal(t, slip.GrossSalary-slip.TotalDeductions, slip.NetSalary)
}

func TestBuilder_ZeroBasicProducesZeroSlip(t *testing.T) {
	builder := newBuilder()

	in := baseInput(0)
	in.Components = []salarycomponent.SalaryComponent{
		{
			ID:       uuid.New(),
			Name:     "Travel",
			Kind:     salarycomponent.KindAllowance,
			Category: salarycomponent.CategoryFixed,
			Amount:   10000,
		},
	}

	slip, err := builder.Build(in)

	assert.NoError(t, err)
	assert.Zero(t, slip.BasicSalary)
	assert.Zero(t, slip.GrossSalary)
	assert.Zero(t, slip.NetSalary)
	assert.Empty(t, slip.LineItems)
}

func TestBuilder_Deterministic(t *testing.T) {
	builder := newBuilder()

	in := baseInput(123456)
	in.WorkedDays = intPtr(17)
	in.OvertimeAmount = 4200
	in.Loans = []loan.Deduction{
		{LoanID: "f2b7f9a0-61c7-4b5d-9a1e-3d2b1a0c9e8f", LoanType: "Staff Loan", Amount: 3000},
	}
	in.LoansEnabled = true

	first, err := builder.Build(in)
	assert.NoError(t, err)
	second, err := builder.Build(in)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuilder_RejectsBadInput(t *testing.T) {
	builder := newBuilder()

	t.Run("negative basic", func(t *testing.T) {
		_, err := builder.Build(baseInput(-1))
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidAmount)
	})

	t.Run("negative worked days", func(t *testing.T) {
		in := baseInput(80000)
		in.WorkedDays = intPtr(-1)
		_, err := builder.Build(in)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidAmount)
	})

	t.Run("negative loan installment", func(t *testing.T) {
		in := baseInput(80000)
		in.Loans = []loan.Deduction{{LoanID: uuid.NewString(), LoanType: "Staff Loan", Amount: -1}}
		in.LoansEnabled = true
		_, err := builder.Build(in)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidAmount)
	})

	t.Run("malformed tax table blocks the slip", func(t *testing.T) {
		in := baseInput(80000)
		in.Slabs = nil
		_, err := builder.Build(in)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})
}
