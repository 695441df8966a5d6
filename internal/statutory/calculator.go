package statutory

import (
	"math"
	"sort"

	statutoryerrors "go-payroll/internal/statutory/errors"
)

// Statutory contribution rates. EPF and ETF are computed on basic
// salary only, never on gross, regardless of how allowances are
// flagged in configuration.
type Rates struct {
	EPFEmployee float64
	EPFEmployer float64
	ETF         float64
}

// DefaultRates returns the current jurisdiction constants: 8% employee
// EPF, 12% employer EPF, 3% ETF.
func DefaultRates() Rates {
	return Rates{
		EPFEmployee: 0.08,
		EPFEmployer: 0.12,
		ETF:         0.03,
	}
}

type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// RoundHalfUp rounds to the nearest whole currency unit, halves up.
// All published amounts are rounded exactly once, at the point the
// figure is produced.
func RoundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

func (c *Calculator) EPFEmployee(basicSalary int64) (int64, error) {
	return contribution(basicSalary, c.rates.EPFEmployee)
}

func (c *Calculator) EPFEmployer(basicSalary int64) (int64, error) {
	return contribution(basicSalary, c.rates.EPFEmployer)
}

func (c *Calculator) ETF(basicSalary int64) (int64, error) {
	return contribution(basicSalary, c.rates.ETF)
}

func contribution(basicSalary int64, rate float64) (int64, error) {
	if basicSalary < 0 {
		return 0, statutoryerrors.ErrInvalidAmount
	}
	return RoundHalfUp(float64(basicSalary) * rate), nil
}

// PAYE computes progressive slab tax. Each slab taxes only the part of
// taxableIncome that falls inside its own band, per-slab amounts stay
// fractional and the total is rounded once at the end.
func (c *Calculator) PAYE(taxableIncome int64, slabs []TaxSlab) (int64, error) {
	if err := ValidateSlabs(slabs); err != nil {
		return 0, err
	}
	if taxableIncome <= 0 {
		return 0, nil
	}

	var tax float64
	for _, slab := range slabs {
		if taxableIncome <= slab.MinIncome {
			break
		}
		upper := taxableIncome
		if slab.MaxIncome != nil && *slab.MaxIncome < upper {
			upper = *slab.MaxIncome
		}
		tax += float64(upper-slab.MinIncome) * slab.Rate
	}

	return RoundHalfUp(tax), nil
}

// ValidateSlabs rejects any table that does not cover [0, inf) exactly
// once: slabs must be sorted ascending, start at zero, be contiguous
// with no gaps or overlaps, and end with a single open slab.
func ValidateSlabs(slabs []TaxSlab) error {
	if len(slabs) == 0 {
		return statutoryerrors.ErrInvalidTaxTable
	}

	sorted := sort.SliceIsSorted(slabs, func(i, j int) bool {
		return slabs[i].MinIncome < slabs[j].MinIncome
	})
	if !sorted {
		return statutoryerrors.ErrInvalidTaxTable
	}

	if slabs[0].MinIncome != 0 {
		return statutoryerrors.ErrInvalidTaxTable
	}

	for i, slab := range slabs {
		if slab.Rate < 0 {
			return statutoryerrors.ErrInvalidTaxTable
		}

		last := i == len(slabs)-1
		if last {
			if slab.MaxIncome != nil {
				return statutoryerrors.ErrInvalidTaxTable
			}
			continue
		}

		if slab.MaxIncome == nil || *slab.MaxIncome <= slab.MinIncome {
			return statutoryerrors.ErrInvalidTaxTable
		}
		if slabs[i+1].MinIncome != *slab.MaxIncome {
			return statutoryerrors.ErrInvalidTaxTable
		}
	}

	return nil
}
