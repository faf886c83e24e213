// Package pricing implements the quotation pricing core: customs tax and
// service fee calculations, exemption handling, and proportional distribution
// of shared import costs across quoted lines.
//
// Every function here is pure and synchronous. Missing numeric inputs default
// to zero before arithmetic; nothing in this package performs I/O or panics on
// incomplete administrator input.
package pricing

import (
	"math"

	"freightdesk/internal/core/types"
)

// igvServicesRate is the IGV markup applied to logistics service fees.
// Fixed at 18% by regulation, independent of the configurable tax rates.
var igvServicesRate = types.MustMoney("18")

// SafeMoney converts a raw float input to Money, mapping NaN and Inf to zero.
// Form state arrives as plain JSON numbers; a half-filled form must never
// propagate a non-finite value into a computed total.
func SafeMoney(f float64) types.Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return types.Zero()
	}
	return types.NewMoney(f)
}

// TaxRates holds configurable ad-valorem tax percentages in [0,100].
type TaxRates struct {
	AdValorem types.Money
	IGV       types.Money
	IPM       types.Money
}

// TaxBreakdown is the result of customs tax computation over a CIF base.
type TaxBreakdown struct {
	AdValorem   types.Money
	IGV         types.Money
	IPM         types.Money
	Antidumping types.Money
	Total       types.Money
}

// AdValorem computes the ad-valorem duty: CIF x rate / 100.
func AdValorem(cif, rate types.Money) types.Money {
	return types.Percent(cif, rate)
}

// IGV computes the general sales tax over the CIF base: CIF x rate / 100.
func IGV(cif, rate types.Money) types.Money {
	return types.Percent(cif, rate)
}

// IPM computes the municipal promotion tax: CIF x rate / 100.
func IPM(cif, rate types.Money) types.Money {
	return types.Percent(cif, rate)
}

// ComputeTaxes evaluates all customs taxes over a CIF base.
// Antidumping is a flat externally-supplied amount (government rate times
// declared quantity), not derived from the CIF value.
func ComputeTaxes(cif types.Money, rates TaxRates, antidumping types.Money) TaxBreakdown {
	b := TaxBreakdown{
		AdValorem:   AdValorem(cif, rates.AdValorem),
		IGV:         IGV(cif, rates.IGV),
		IPM:         IPM(cif, rates.IPM),
		Antidumping: antidumping,
	}
	b.Total = b.AdValorem.Add(b.IGV).Add(b.IPM).Add(b.Antidumping)
	return b
}

// DynamicValues holds the commercial base figures a response is priced from.
type DynamicValues struct {
	CommercialValue types.Money
	Freight         types.Money
	Insurance       types.Money
	CIF             types.Money
}

// ComputeCIF returns commercial value + freight + insurance.
func ComputeCIF(commercialValue, freight, insurance types.Money) types.Money {
	return commercialValue.Add(freight).Add(insurance)
}

// ServiceFields is the fixed set of named logistics service fees an
// administrator may charge on a complete response.
type ServiceFields struct {
	ConsolidatedService   types.Money
	CargoSeparation       types.Money
	ProductInspection     types.Money
	CertificateManagement types.Money
	FactoryInspection     types.Money
	LocalTransport        types.Money
}

// Subtotal sums all service fields.
func (f ServiceFields) Subtotal() types.Money {
	return f.ConsolidatedService.
		Add(f.CargoSeparation).
		Add(f.ProductInspection).
		Add(f.CertificateManagement).
		Add(f.FactoryInspection).
		Add(f.LocalTransport)
}

// ServiceCalculation is the IGV-inclusive service fee total.
type ServiceCalculation struct {
	Subtotal    types.Money
	IGVServices types.Money
	Total       types.Money
}

// ComputeServices applies the fixed 18% service IGV to the field subtotal.
// Identities: IGVServices = Subtotal x 0.18, Total = Subtotal x 1.18.
func ComputeServices(fields ServiceFields) ServiceCalculation {
	subtotal := fields.Subtotal()
	igv := types.Percent(subtotal, igvServicesRate)
	return ServiceCalculation{
		Subtotal:    subtotal,
		IGVServices: igv,
		Total:       subtotal.Add(igv),
	}
}

// Exemptions is the set of administrator-selected flags that each zero out
// one import expense line when true. Read once at build time, not persisted
// independently of the response.
type Exemptions struct {
	ConsolidatedServiceAir bool
	ConsolidatedServiceSea bool
	CargoSeparation        bool
	ProductInspection      bool
	CertificateManagement  bool
	FactoryInspection      bool
	LocalTransport         bool
	FiscalObligations      bool
}

// ImportExpenses holds the IGV-inclusive per-line expenses of a complete
// response. Each line is its service field x 1.18, or exactly zero when the
// matching exemption flag is set.
type ImportExpenses struct {
	ConsolidatedService   types.Money
	CargoSeparation       types.Money
	ProductInspection     types.Money
	CertificateManagement types.Money
	FactoryInspection     types.Money
	LocalTransport        types.Money

	// FiscalObligations carries the customs tax total, zeroed when the
	// quotation is tax-exempt.
	FiscalObligations types.Money

	Total types.Money
}

// withIGV applies the fixed 18% markup unless the line is exempt.
func withIGV(field types.Money, exempt bool) types.Money {
	if exempt {
		return types.Zero()
	}
	return field.Add(types.Percent(field, igvServicesRate))
}

// ComputeImportExpenses builds the expense lines for a complete response.
// maritime selects which consolidated-service exemption flag applies: the air
// flag covers express shipments, the sea flag covers maritime ones.
func ComputeImportExpenses(fields ServiceFields, taxes TaxBreakdown, maritime bool, ex Exemptions) ImportExpenses {
	consolidatedExempt := ex.ConsolidatedServiceAir
	if maritime {
		consolidatedExempt = ex.ConsolidatedServiceSea
	}

	e := ImportExpenses{
		ConsolidatedService:   withIGV(fields.ConsolidatedService, consolidatedExempt),
		CargoSeparation:       withIGV(fields.CargoSeparation, ex.CargoSeparation),
		ProductInspection:     withIGV(fields.ProductInspection, ex.ProductInspection),
		CertificateManagement: withIGV(fields.CertificateManagement, ex.CertificateManagement),
		FactoryInspection:     withIGV(fields.FactoryInspection, ex.FactoryInspection),
		LocalTransport:        withIGV(fields.LocalTransport, ex.LocalTransport),
	}
	if !ex.FiscalObligations {
		e.FiscalObligations = taxes.Total
	} else {
		e.FiscalObligations = types.Zero()
	}

	e.Total = e.ConsolidatedService.
		Add(e.CargoSeparation).
		Add(e.ProductInspection).
		Add(e.CertificateManagement).
		Add(e.FactoryInspection).
		Add(e.LocalTransport).
		Add(e.FiscalObligations)
	return e
}
