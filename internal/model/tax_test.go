package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLandlordCategory(t *testing.T) {
	tests := map[string]LandlordCategory{
		"self_employed":   LandlordSelfEmployed,
		"Self-Employed":   LandlordSelfEmployed,
		" npd ":           LandlordSelfEmployed,
		"sole_proprietor": LandlordSoleProprietor,
		"IP":              LandlordSoleProprietor,
		"individual":      LandlordIndividual,
	}
	for raw, want := range tests {
		got, err := ParseLandlordCategory(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLandlordCategory("llc")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseTenantCategory(t *testing.T) {
	got, err := ParseTenantCategory("physical")
	require.NoError(t, err)
	assert.Equal(t, TenantNaturalPerson, got)

	got, err = ParseTenantCategory("Legal-Entity")
	require.NoError(t, err)
	assert.Equal(t, TenantLegalEntity, got)

	_, err = ParseTenantCategory("")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseRegime(t *testing.T) {
	regime, err := ParseRegime("individual", "")
	require.NoError(t, err)
	assert.Equal(t, Regime{Landlord: LandlordIndividual, Tenant: TenantNaturalPerson}, regime)

	_, err = ParseRegime("self_employed", "government")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Equal(t, "self_employed/natural_person", DefaultRegime().String())
}

func TestPatchApplyKeepsUnsetFields(t *testing.T) {
	name := "Loft"
	property := Property{Name: "Flat", Address: "Lenina 1", Category: PropertyCategoryApartment}
	PropertyPatch{Name: &name}.Apply(&property)

	assert.Equal(t, "Loft", property.Name)
	assert.Equal(t, "Lenina 1", property.Address)
	assert.Equal(t, PropertyCategoryApartment, property.Category)
	assert.False(t, PropertyCategory("garage").Valid())
}
