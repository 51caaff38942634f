package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownCategory = errors.New("unknown category")

type LandlordCategory string

const (
	LandlordSelfEmployed   LandlordCategory = "self_employed"
	LandlordSoleProprietor LandlordCategory = "sole_proprietor"
	LandlordIndividual     LandlordCategory = "individual"
)

type TenantCategory string

const (
	TenantNaturalPerson TenantCategory = "natural_person"
	TenantLegalEntity   TenantCategory = "legal_entity"
)

// Regime selects the tax rate. Tenant only matters for self-employed landlords.
type Regime struct {
	Landlord LandlordCategory `json:"landlord_category"`
	Tenant   TenantCategory   `json:"tenant_category"`
}

func DefaultRegime() Regime {
	return Regime{Landlord: LandlordSelfEmployed, Tenant: TenantNaturalPerson}
}

func (r Regime) String() string {
	return string(r.Landlord) + "/" + string(r.Tenant)
}

func ParseLandlordCategory(raw string) (LandlordCategory, error) {
	switch normalizeCategory(raw) {
	case "self_employed", "selfemployed", "npd":
		return LandlordSelfEmployed, nil
	case "sole_proprietor", "ip", "entrepreneur":
		return LandlordSoleProprietor, nil
	case "individual", "ndfl":
		return LandlordIndividual, nil
	default:
		return "", ErrUnknownCategory
	}
}

func ParseTenantCategory(raw string) (TenantCategory, error) {
	switch normalizeCategory(raw) {
	case "natural_person", "physical", "individual":
		return TenantNaturalPerson, nil
	case "legal_entity", "legal", "company":
		return TenantLegalEntity, nil
	default:
		return "", ErrUnknownCategory
	}
}

// ParseRegime parses both axes. An empty tenant defaults to natural person.
func ParseRegime(landlord, tenant string) (Regime, error) {
	l, err := ParseLandlordCategory(landlord)
	if err != nil {
		return Regime{}, err
	}
	if strings.TrimSpace(tenant) == "" {
		return Regime{Landlord: l, Tenant: TenantNaturalPerson}, nil
	}
	t, err := ParseTenantCategory(tenant)
	if err != nil {
		return Regime{}, err
	}
	return Regime{Landlord: l, Tenant: t}, nil
}

func normalizeCategory(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(raw, "-", "_")
}

type TaxResult struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

type PropertyTaxResult struct {
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	TaxResult
}
