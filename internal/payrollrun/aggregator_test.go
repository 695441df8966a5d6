package payrollrun_test

import (
	"testing"

	"go-payroll/internal/payrollrun"
	"go-payroll/internal/payslip"

	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string {
	return &v
}

func TestAggregate(t *testing.T) {
	slips := []payslip.PaySlip{
		{
			DepartmentName:  strPtr("Engineering"),
			BasicSalary:     100000,
			GrossSalary:     120000,
			NetSalary:       108000,
			EPFEmployee:     8000,
			EPFEmployer:     12000,
			ETFEmployer:     3000,
			PAYETax:         4000,
			TotalDeductions: 12000,
		},
		{
			DepartmentName:  strPtr("Engineering"),
			BasicSalary:     80000,
			GrossSalary:     90000,
			NetSalary:       83600,
			EPFEmployee:     6400,
			EPFEmployer:     9600,
			ETFEmployer:     2400,
			PAYETax:         0,
			TotalDeductions: 6400,
		},
		{
			DepartmentName: strPtr("Finance"),
			BasicSalary:    50000,
			GrossSalary:    50000,
			NetSalary:      46000,
			EPFEmployee:    4000,
			EPFEmployer:    6000,
			ETFEmployer:    1500,
		},
		{
			// No department, counted only in the grand totals.
			BasicSalary: 40000,
			GrossSalary: 40000,
			NetSalary:   36800,
			EPFEmployee: 3200,
			EPFEmployer: 4800,
			ETFEmployer: 1200,
		},
	}

	totals := payrollrun.Aggregate(slips)

	assert.Equal(t, 4, totals.EmployeeCount)
	assert.Equal(t, int64(300000), totals.TotalGross)
	assert.Equal(t, int64(274400), totals.TotalNet)
	assert.Equal(t, int64(21600), totals.TotalEPFEmployee)
	assert.Equal(t, int64(32400), totals.TotalEPFEmployer)
	assert.Equal(t, int64(8100), totals.TotalETF)
	assert.Equal(t, int64(4000), totals.TotalPAYE)

	assert.Len(t, totals.Departments, 2)
	assert.Equal(t, "Engineering", totals.Departments[0].Name)
	assert.Equal(t, 2, totals.Departments[0].Count)
	assert.Equal(t, int64(210000), totals.Departments[0].GrossTotal)
	assert.Equal(t, "Finance", totals.Departments[1].Name)
	assert.Equal(t, 1, totals.Departments[1].Count)
}

func TestAggregate_Empty(t *testing.T) {
	totals := payrollrun.Aggregate(nil)

	assert.Zero(t, totals.EmployeeCount)
	assert.Zero(t, totals.TotalGross)
	assert.Empty(t, totals.Departments)
}
