package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF formats an already-computed payslip as a simple A4
// document. No recalculation happens here; the slip's stored figures
// are printed as-is.
func RenderPDF(slip *PaySlip, companyName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, companyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Payslip")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeNumber))
	pdf.Ln(6)
	if slip.DepartmentName != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Department: %s", *slip.DepartmentName))
		pdf.Ln(6)
	}
	if slip.EPFNumber != nil {
		pdf.Cell(0, 7, fmt.Sprintf("EPF No: %s", *slip.EPFNumber))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		slip.PeriodStart.Format("2006-01-02"),
		slip.PeriodEnd.Format("2006-01-02"),
	))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Days worked: %d of %d", slip.WorkedDays, slip.WorkingDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Earnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	amountLine(pdf, "Basic Salary", slip.BasicSalary)
	for _, item := range slip.LineItems {
		if item.Kind == LineKindAllowance {
			amountLine(pdf, item.Name, item.Amount)
		}
	}
	amountLine(pdf, "Gross Salary", slip.GrossSalary)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Deductions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range slip.LineItems {
		if item.Kind == LineKindDeduction {
			amountLine(pdf, item.Name, item.Amount)
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	amountLine(pdf, "Net Salary", slip.NetSalary)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Employer contributions: EPF %d, ETF %d (not deducted from pay)",
		slip.EPFEmployer, slip.ETFEmployer))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func amountLine(pdf *gofpdf.Fpdf, label string, amount int64) {
	pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("%d", amount), "", 1, "R", false, 0, "")
}
