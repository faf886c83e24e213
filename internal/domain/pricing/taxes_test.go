package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"freightdesk/internal/core/types"
)

func TestComputeTaxes_Identity(t *testing.T) {
	cases := []struct {
		name        string
		cif         string
		rates       TaxRates
		antidumping string
	}{
		{"typical", "12500.50", TaxRates{types.MustMoney("6"), types.MustMoney("16"), types.MustMoney("2")}, "350"},
		{"zero cif", "0", TaxRates{types.MustMoney("6"), types.MustMoney("16"), types.MustMoney("2")}, "0"},
		{"zero rates", "9999.99", TaxRates{}, "0"},
		{"max rates", "100", TaxRates{types.MustMoney("100"), types.MustMoney("100"), types.MustMoney("100")}, "12.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cif := types.MustMoney(tc.cif)
			b := ComputeTaxes(cif, tc.rates, types.MustMoney(tc.antidumping))

			expected := b.AdValorem.Add(b.IGV).Add(b.IPM).Add(b.Antidumping)
			assert.True(t, b.Total.Equal(expected), "totalTaxes must equal the sum of its parts")

			assert.True(t, b.AdValorem.Equal(types.Percent(cif, tc.rates.AdValorem)))
			assert.True(t, b.IGV.Equal(types.Percent(cif, tc.rates.IGV)))
			assert.True(t, b.IPM.Equal(types.Percent(cif, tc.rates.IPM)))
		})
	}
}

func TestComputeCIF(t *testing.T) {
	cif := ComputeCIF(types.MustMoney("1000"), types.MustMoney("150"), types.MustMoney("25.50"))
	assert.True(t, cif.Equal(types.MustMoney("1175.50")))
}

func TestComputeServices_FixedEighteenPercent(t *testing.T) {
	fields := ServiceFields{
		ConsolidatedService:   types.MustMoney("200"),
		CargoSeparation:       types.MustMoney("50"),
		ProductInspection:     types.MustMoney("80"),
		CertificateManagement: types.MustMoney("30"),
		FactoryInspection:     types.MustMoney("120"),
		LocalTransport:        types.MustMoney("20"),
	}

	calc := ComputeServices(fields)

	assert.True(t, calc.Subtotal.Equal(types.MustMoney("500")))
	assert.True(t, calc.IGVServices.Equal(types.MustMoney("90")), "igvServices = subtotal x 0.18")
	assert.True(t, calc.Total.Equal(types.MustMoney("590")), "totalServices = subtotal x 1.18")
}

func TestComputeServices_ZeroFields(t *testing.T) {
	calc := ComputeServices(ServiceFields{})
	assert.True(t, calc.Subtotal.IsZero())
	assert.True(t, calc.IGVServices.IsZero())
	assert.True(t, calc.Total.IsZero())
}

func TestComputeImportExpenses_ExemptionZeroing(t *testing.T) {
	fields := ServiceFields{
		ConsolidatedService:   types.MustMoney("100"),
		CargoSeparation:       types.MustMoney("100"),
		ProductInspection:     types.MustMoney("100"),
		CertificateManagement: types.MustMoney("100"),
		FactoryInspection:     types.MustMoney("100"),
		LocalTransport:        types.MustMoney("100"),
	}
	taxes := ComputeTaxes(types.MustMoney("1000"), TaxRates{
		AdValorem: types.MustMoney("6"),
		IGV:       types.MustMoney("16"),
		IPM:       types.MustMoney("2"),
	}, types.Zero())

	cases := []struct {
		name     string
		ex       Exemptions
		maritime bool
		line     func(ImportExpenses) types.Money
	}{
		{"consolidated air", Exemptions{ConsolidatedServiceAir: true}, false, func(e ImportExpenses) types.Money { return e.ConsolidatedService }},
		{"consolidated sea", Exemptions{ConsolidatedServiceSea: true}, true, func(e ImportExpenses) types.Money { return e.ConsolidatedService }},
		{"cargo separation", Exemptions{CargoSeparation: true}, false, func(e ImportExpenses) types.Money { return e.CargoSeparation }},
		{"product inspection", Exemptions{ProductInspection: true}, false, func(e ImportExpenses) types.Money { return e.ProductInspection }},
		{"certificate management", Exemptions{CertificateManagement: true}, false, func(e ImportExpenses) types.Money { return e.CertificateManagement }},
		{"factory inspection", Exemptions{FactoryInspection: true}, false, func(e ImportExpenses) types.Money { return e.FactoryInspection }},
		{"local transport", Exemptions{LocalTransport: true}, false, func(e ImportExpenses) types.Money { return e.LocalTransport }},
		{"fiscal obligations", Exemptions{FiscalObligations: true}, false, func(e ImportExpenses) types.Money { return e.FiscalObligations }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := ComputeImportExpenses(fields, taxes, tc.maritime, tc.ex)
			assert.True(t, tc.line(e).IsZero(), "exempt line must be exactly zero")
		})
	}
}

func TestComputeImportExpenses_NoExemptions(t *testing.T) {
	fields := ServiceFields{ConsolidatedService: types.MustMoney("100")}
	taxes := TaxBreakdown{Total: types.MustMoney("240")}

	e := ComputeImportExpenses(fields, taxes, false, Exemptions{})

	assert.True(t, e.ConsolidatedService.Equal(types.MustMoney("118")), "expense line carries the 18%% markup")
	assert.True(t, e.FiscalObligations.Equal(types.MustMoney("240")))
	assert.True(t, e.Total.Equal(types.MustMoney("358")))
}

func TestComputeImportExpenses_AirExemptionDoesNotCoverSea(t *testing.T) {
	fields := ServiceFields{ConsolidatedService: types.MustMoney("100")}

	e := ComputeImportExpenses(fields, TaxBreakdown{}, true, Exemptions{ConsolidatedServiceAir: true})
	assert.True(t, e.ConsolidatedService.Equal(types.MustMoney("118")),
		"air exemption must not zero a maritime consolidation line")
}

func TestSafeMoney_NonFiniteInputs(t *testing.T) {
	assert.True(t, SafeMoney(math.NaN()).IsZero())
	assert.True(t, SafeMoney(math.Inf(1)).IsZero())
	assert.True(t, SafeMoney(math.Inf(-1)).IsZero())
	assert.True(t, SafeMoney(12.5).Equal(types.NewMoney(12.5)))
}
