package statutory_test

import (
	"testing"

	"go-payroll/internal/statutory"
	statutoryerrors "go-payroll/internal/statutory/errors"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func defaultSlabs() []statutory.TaxSlab {
	return []statutory.TaxSlab{
		{MinIncome: 0, MaxIncome: int64Ptr(100000), Rate: 0},
		{MinIncome: 100000, MaxIncome: int64Ptr(150000), Rate: 0.06},
		{MinIncome: 150000, MaxIncome: nil, Rate: 0.12},
	}
}

func TestCalculator_Contributions(t *testing.T) {
	calc := statutory.NewCalculator(statutory.DefaultRates())

	t.Run("epf employee 8 percent", func(t *testing.T) {
		got, err := calc.EPFEmployee(50000)
		assert.NoError(t, err)
		assert.Equal(t, int64(4000), got)
	})

	t.Run("epf employer 12 percent", func(t *testing.T) {
		got, err := calc.EPFEmployer(50000)
		assert.NoError(t, err)
		assert.Equal(t, int64(6000), got)
	})

	t.Run("etf 3 percent", func(t *testing.T) {
		got, err := calc.ETF(50000)
		assert.NoError(t, err)
		assert.Equal(t, int64(1500), got)
	})

	t.Run("round half up", func(t *testing.T) {
		// 50631 * 0.08 = 4050.48 -> 4050, 50632 * 0.08 = 4050.56 -> 4051
		got, err := calc.EPFEmployee(50631)
		assert.NoError(t, err)
		assert.Equal(t, int64(4050), got)

		got, err = calc.EPFEmployee(50632)
		assert.NoError(t, err)
		assert.Equal(t, int64(4051), got)
	})

	t.Run("zero basic yields zero", func(t *testing.T) {
		got, err := calc.EPFEmployee(0)
		assert.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("negative basic rejected", func(t *testing.T) {
		_, err := calc.EPFEmployee(-1)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidAmount)

		_, err = calc.EPFEmployer(-1)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidAmount)

		_, err = calc.ETF(-1)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidAmount)
	})

	t.Run("monotonic in basic salary", func(t *testing.T) {
		prev := int64(-1)
		for basic := int64(0); basic <= 200000; basic += 7919 {
			got, err := calc.EPFEmployee(basic)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev)
			prev = got
		}
	})
}

func TestCalculator_PAYE(t *testing.T) {
	calc := statutory.NewCalculator(statutory.DefaultRates())

	t.Run("below first band is untaxed", func(t *testing.T) {
		got, err := calc.PAYE(90000, defaultSlabs())
		assert.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("second band taxes only the excess", func(t *testing.T) {
		got, err := calc.PAYE(120000, defaultSlabs())
		assert.NoError(t, err)
		assert.Equal(t, int64(1200), got)
	})

	t.Run("top band accumulates lower bands", func(t *testing.T) {
		// 50000 * 6% + 50000 * 12% = 3000 + 6000
		got, err := calc.PAYE(200000, defaultSlabs())
		assert.NoError(t, err)
		assert.Equal(t, int64(9000), got)
	})

	t.Run("zero and negative income are untaxed", func(t *testing.T) {
		got, err := calc.PAYE(0, defaultSlabs())
		assert.NoError(t, err)
		assert.Zero(t, got)

		got, err = calc.PAYE(-5000, defaultSlabs())
		assert.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("total rounded once at the end", func(t *testing.T) {
		slabs := []statutory.TaxSlab{
			{MinIncome: 0, MaxIncome: int64Ptr(100), Rate: 0.015},
			{MinIncome: 100, MaxIncome: nil, Rate: 0.015},
		}
		// 100*0.015 + 101*0.015 = 1.5 + 1.515 = 3.015 -> 3.
		// Per-slab rounding would give 2 + 2 = 4.
		got, err := calc.PAYE(201, slabs)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), got)
	})

	t.Run("monotonic in taxable income", func(t *testing.T) {
		prev := int64(-1)
		for income := int64(0); income <= 400000; income += 13337 {
			got, err := calc.PAYE(income, defaultSlabs())
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev)
			prev = got
		}
	})
}

func TestValidateSlabs(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		assert.NoError(t, statutory.ValidateSlabs(defaultSlabs()))
	})

	t.Run("empty table rejected", func(t *testing.T) {
		err := statutory.ValidateSlabs(nil)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})

	t.Run("gap between slabs rejected", func(t *testing.T) {
		slabs := []statutory.TaxSlab{
			{MinIncome: 0, MaxIncome: int64Ptr(100000), Rate: 0},
			{MinIncome: 120000, MaxIncome: nil, Rate: 0.06},
		}
		err := statutory.ValidateSlabs(slabs)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})

	t.Run("overlap rejected", func(t *testing.T) {
		slabs := []statutory.TaxSlab{
			{MinIncome: 0, MaxIncome: int64Ptr(100000), Rate: 0},
			{MinIncome: 90000, MaxIncome: nil, Rate: 0.06},
		}
		err := statutory.ValidateSlabs(slabs)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})

	t.Run("not starting at zero rejected", func(t *testing.T) {
		slabs := []statutory.TaxSlab{
			{MinIncome: 1000, MaxIncome: nil, Rate: 0},
		}
		err := statutory.ValidateSlabs(slabs)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})

	t.Run("bounded last slab rejected", func(t *testing.T) {
		slabs := []statutory.TaxSlab{
			{MinIncome: 0, MaxIncome: int64Ptr(100000), Rate: 0},
			{MinIncome: 100000, MaxIncome: int64Ptr(150000), Rate: 0.06},
		}
		err := statutory.ValidateSlabs(slabs)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})

	t.Run("unsorted rejected", func(t *testing.T) {
		slabs := []statutory.TaxSlab{
			{MinIncome: 100000, MaxIncome: int64Ptr(150000), Rate: 0.06},
			{MinIncome: 0, MaxIncome: int64Ptr(100000), Rate: 0},
			{MinIncome: 150000, MaxIncome: nil, Rate: 0.12},
		}
		err := statutory.ValidateSlabs(slabs)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})

	t.Run("paye surfaces malformed table", func(t *testing.T) {
		calc := statutory.NewCalculator(statutory.DefaultRates())
		_, err := calc.PAYE(120000, nil)
		assert.ErrorIs(t, err, statutoryerrors.ErrInvalidTaxTable)
	})
}
