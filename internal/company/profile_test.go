package company_test

import (
	"testing"

	"go-payroll/internal/company"

	"github.com/stretchr/testify/assert"
)

func TestStatutoryProfile_MissingFields(t *testing.T) {
	t.Run("empty profile reports every field", func(t *testing.T) {
		p := &company.StatutoryProfile{}
		assert.Equal(t, []string{
			"epf_registration_no",
			"etf_registration_no",
			"tax_identification",
			"bank_name",
			"bank_branch",
			"bank_account_no",
		}, p.MissingFields())
	})

	t.Run("partial profile reports only gaps", func(t *testing.T) {
		p := &company.StatutoryProfile{
			EPFRegistrationNo: "EPF/2211/X",
			ETFRegistrationNo: "ETF/2211/X",
			TaxIdentification: "TIN-558812",
			BankName:          "Commercial Bank",
		}
		assert.Equal(t, []string{"bank_branch", "bank_account_no"}, p.MissingFields())
	})

	t.Run("complete profile reports nothing", func(t *testing.T) {
		p := &company.StatutoryProfile{
			EPFRegistrationNo: "EPF/2211/X",
			ETFRegistrationNo: "ETF/2211/X",
			TaxIdentification: "TIN-558812",
			BankName:          "Commercial Bank",
			BankBranch:        "Colombo 03",
			BankAccountNo:     "8001234567",
		}
		assert.Empty(t, p.MissingFields())
	})
}
