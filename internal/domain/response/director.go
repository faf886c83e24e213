package response

import (
	"freightdesk/internal/core/types"
)

// Director orchestrates the three terminal build paths over a Builder. The
// paths are independent constructions sharing common scaffolding, not stages
// of a sequence: a quotation response is built exactly once per call from a
// fresh input snapshot.
type Director struct{}

// NewDirector creates a response director.
func NewDirector() *Director {
	return &Director{}
}

// BuildForPendingService produces the PENDING response shape: aggregated
// basic info plus per-product pending pricing. No tax or expense pipeline
// runs for pending responses.
func (d *Director) BuildForPendingService(in BuildInput) ResponseDTO {
	b := NewBuilder(in)
	products, basicInfo := b.pendingProducts()

	return ResponseDTO{
		QuotationID:   in.QuotationID,
		ServiceType:   ServicePending,
		QuotationInfo: b.quotationInfo(ServicePending),
		ResponseData: ResponseData{
			Type:    ServicePending,
			Pending: &PendingData{BasicInfo: basicInfo},
		},
		Products: products,
	}
}

// BuildForCompleteService produces the older complete shape. The tag is
// derived from the selected logistics service name; the maritime config block
// is attached only when the result is MARITIME.
//
// Retained for backward compatibility with pre-migration consumers; new
// callers use BuildForCompleteServiceExpanded.
func (d *Director) BuildForCompleteService(in BuildInput) ResponseDTO {
	st := ServiceTypeFor(in.LogisticsService)
	b := NewBuilder(in)
	calc, distributed := b.calculations(st)

	return ResponseDTO{
		QuotationID:   in.QuotationID,
		ServiceType:   st,
		QuotationInfo: b.quotationInfo(st),
		ResponseData: ResponseData{
			Type: st,
			Complete: &CompleteData{
				Calculations:  calc,
				PackingList:   b.packingList(),
				CargoHandling: b.cargoHandling(),
			},
		},
		Products: b.completeProducts(distributed),
	}
}

// BuildForCompleteServiceExpanded produces the richer complete shape used by
// current callers: the same calculations plus generalInformation,
// taxPercentage, importCosts and quoteSummary blocks.
func (d *Director) BuildForCompleteServiceExpanded(in BuildInput) ResponseDTO {
	dto := d.BuildForCompleteService(in)
	complete := dto.ResponseData.Complete

	complete.GeneralInformation = &GeneralInformation{
		ServiceLogistic: in.LogisticsService,
		Incoterm:        in.Incoterm,
		CargoType:       in.CargoType,
		Courier:         in.Courier,
	}
	complete.TaxPercentage = &TaxPercentage{
		AdValoremRate:     in.AdValoremRate,
		IGVRate:           in.IGVRate,
		IPMRate:           in.IPMRate,
		AntidumpingAmount: in.Antidumping,
	}
	complete.ImportCosts = &ImportCosts{
		ExpenseFields: complete.Calculations.ImportExpenses,
		TotalExpenses: complete.Calculations.ImportExpenses.Total,
	}

	cv := complete.Calculations.DynamicValues.CommercialValue
	complete.QuoteSummary = &QuoteSummary{
		CommercialValue:  cv,
		TotalExpenses:    complete.Calculations.ServiceCalculations.TotalServices,
		TotalTaxes:       complete.Calculations.Taxes.TotalTaxes,
		TotalImportCosts: complete.Calculations.TotalImportCosts,
		GrandTotal:       types.SumFloat2(cv, complete.Calculations.TotalImportCosts),
	}
	return dto
}
