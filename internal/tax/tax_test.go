package tax

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/renttax/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRate(t *testing.T) {
	tests := []struct {
		name   string
		regime model.Regime
		want   string
	}{
		{"self-employed natural person", model.Regime{Landlord: model.LandlordSelfEmployed, Tenant: model.TenantNaturalPerson}, "0.04"},
		{"self-employed legal entity", model.Regime{Landlord: model.LandlordSelfEmployed, Tenant: model.TenantLegalEntity}, "0.06"},
		{"sole proprietor natural person", model.Regime{Landlord: model.LandlordSoleProprietor, Tenant: model.TenantNaturalPerson}, "0.06"},
		{"sole proprietor legal entity", model.Regime{Landlord: model.LandlordSoleProprietor, Tenant: model.TenantLegalEntity}, "0.06"},
		{"individual natural person", model.Regime{Landlord: model.LandlordIndividual, Tenant: model.TenantNaturalPerson}, "0.13"},
		{"individual legal entity", model.Regime{Landlord: model.LandlordIndividual, Tenant: model.TenantLegalEntity}, "0.13"},
		{"self-employed without tenant", model.Regime{Landlord: model.LandlordSelfEmployed}, "0.04"},
		{"unrecognized landlord", model.Regime{Landlord: "llc", Tenant: model.TenantLegalEntity}, "0.04"},
		{"zero regime", model.Regime{}, "0.04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(Rate(tt.regime)), "got %s", Rate(tt.regime))
		})
	}
}

func TestCalculateFlat(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		expenses string
		regime   model.Regime
		tax      string
		profit   string
	}{
		{"individual", "100000", "0", model.Regime{Landlord: model.LandlordIndividual}, "13000", "87000"},
		{"sole proprietor", "100000", "0", model.Regime{Landlord: model.LandlordSoleProprietor}, "6000", "94000"},
		{"self-employed with expenses", "50000", "5000", model.DefaultRegime(), "2000", "43000"},
		{"expenses exceed income", "10000", "20000", model.DefaultRegime(), "400", "-10400"},
		{"zero income", "0", "1500", model.Regime{Landlord: model.LandlordSelfEmployed, Tenant: model.TenantLegalEntity}, "0", "-1500"},
		{"fractional amounts", "33333.33", "0.67", model.DefaultRegime(), "1333.3332", "31999.3268"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateFlat(dec(tt.income), dec(tt.expenses), tt.regime)

			assert.True(t, dec(tt.income).Equal(result.TotalIncome))
			assert.True(t, dec(tt.expenses).Equal(result.TotalExpenses))
			assert.True(t, Rate(tt.regime).Equal(result.TaxRate))
			assert.True(t, dec(tt.tax).Equal(result.TaxAmount), "tax %s", result.TaxAmount)
			assert.True(t, dec(tt.profit).Equal(result.NetProfit), "profit %s", result.NetProfit)
		})
	}
}

func TestCalculateFlatExpensesDoNotReduceBase(t *testing.T) {
	withoutExpenses := CalculateFlat(dec("80000"), decimal.Zero, model.DefaultRegime())
	withExpenses := CalculateFlat(dec("80000"), dec("30000"), model.DefaultRegime())

	assert.True(t, withoutExpenses.TaxAmount.Equal(withExpenses.TaxAmount))
	assert.True(t, withoutExpenses.NetProfit.Sub(dec("30000")).Equal(withExpenses.NetProfit))
}

func TestActiveIncomeSkipsInactiveContracts(t *testing.T) {
	contracts := []model.Contract{
		{RentAmount: dec("50000"), IsActive: true, StartDate: time.Now()},
		{RentAmount: dec("20000"), IsActive: false},
		{RentAmount: dec("1000.50"), IsActive: true},
	}

	assert.True(t, dec("51000.50").Equal(ActiveIncome(contracts)))
	assert.True(t, decimal.Zero.Equal(ActiveIncome(nil)))
}

func TestExpenseTotal(t *testing.T) {
	expenses := []model.Expense{{Amount: dec("5000")}, {Amount: dec("250.25")}}

	assert.True(t, dec("5250.25").Equal(ExpenseTotal(expenses)))
	assert.True(t, decimal.Zero.Equal(ExpenseTotal(nil)))
}
