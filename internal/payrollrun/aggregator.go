package payrollrun

import (
	"sort"

	"go-payroll/internal/payslip"
)

type RunTotals struct {
	EmployeeCount    int   `json:"employee_count"`
	TotalGross       int64 `json:"total_gross"`
	TotalNet         int64 `json:"total_net"`
	TotalEPFEmployee int64 `json:"total_epf_employee"`
	TotalEPFEmployer int64 `json:"total_epf_employer"`
	TotalETF         int64 `json:"total_etf"`
	TotalPAYE        int64 `json:"total_paye"`

	Departments []DepartmentTotals `json:"departments,omitempty"`
}

type DepartmentTotals struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	BasicTotal int64  `json:"basic_total"`
	GrossTotal int64  `json:"gross_total"`
	NetTotal   int64  `json:"net_total"`
}

// Aggregate sums per-slip fields into run totals. Totals are never
// recomputed from raw employee data, so they always reconcile with the
// payslip list they were derived from. Slips without a department are
// counted in the grand totals but excluded from the breakdown.
func Aggregate(slips []payslip.PaySlip) RunTotals {
	totals := RunTotals{EmployeeCount: len(slips)}
	byDepartment := make(map[string]*DepartmentTotals)

	for _, s := range slips {
		totals.TotalGross += s.GrossSalary
		totals.TotalNet += s.NetSalary
		totals.TotalEPFEmployee += s.EPFEmployee
		totals.TotalEPFEmployer += s.EPFEmployer
		totals.TotalETF += s.ETFEmployer
		totals.TotalPAYE += s.PAYETax

		if s.DepartmentName == nil || *s.DepartmentName == "" {
			continue
		}
		dept, ok := byDepartment[*s.DepartmentName]
		if !ok {
			dept = &DepartmentTotals{Name: *s.DepartmentName}
			byDepartment[*s.DepartmentName] = dept
		}
		dept.Count++
		dept.BasicTotal += s.BasicSalary
		dept.GrossTotal += s.GrossSalary
		dept.NetTotal += s.NetSalary
	}

	if len(byDepartment) > 0 {
		totals.Departments = make([]DepartmentTotals, 0, len(byDepartment))
		for _, dept := range byDepartment {
			totals.Departments = append(totals.Departments, *dept)
		}
		sort.Slice(totals.Departments, func(i, j int) bool {
			return totals.Departments[i].Name < totals.Departments[j].Name
		})
	}

	return totals
}
