// Package tax holds the rate table and the flat tax/profit calculation.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/model"
)

var (
	rateSelfEmployedNatural = decimal.RequireFromString("0.04")
	rateSelfEmployedLegal   = decimal.RequireFromString("0.06")
	rateSoleProprietor      = decimal.RequireFromString("0.06")
	rateIndividual          = decimal.RequireFromString("0.13")
)

// Rate returns the rate for a regime. Unrecognized values fall back to the
// self-employed / natural person rate.
func Rate(regime model.Regime) decimal.Decimal {
	switch regime.Landlord {
	case model.LandlordSelfEmployed:
		if regime.Tenant == model.TenantLegalEntity {
			return rateSelfEmployedLegal
		}
		return rateSelfEmployedNatural
	case model.LandlordSoleProprietor:
		return rateSoleProprietor
	case model.LandlordIndividual:
		return rateIndividual
	default:
		return rateSelfEmployedNatural
	}
}

// CalculateFlat applies the regime rate to the gross income. Expenses only
// reduce the net profit, never the taxable base.
func CalculateFlat(totalIncome, totalExpenses decimal.Decimal, regime model.Regime) model.TaxResult {
	rate := Rate(regime)
	taxAmount := totalIncome.Mul(rate)
	return model.TaxResult{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		TaxRate:       rate,
		TaxAmount:     taxAmount,
		NetProfit:     totalIncome.Sub(taxAmount).Sub(totalExpenses),
	}
}

func ActiveIncome(contracts []model.Contract) decimal.Decimal {
	total := decimal.Zero
	for _, contract := range contracts {
		if contract.IsActive {
			total = total.Add(contract.RentAmount)
		}
	}
	return total
}

func ExpenseTotal(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total
}
