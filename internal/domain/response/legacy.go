package response

import (
	"freightdesk/internal/core/types"
	"freightdesk/internal/domain/pricing"
)

// Legacy wire shapes for the pre-migration API contract. Field names follow
// the old backend verbatim, including the Spanish snake_case pricing keys.

// LegacyQuotationInfo flattens the response header; regime/customs/naviera
// come from the maritime config and stay empty for non-maritime responses.
type LegacyQuotationInfo struct {
	IDAsesor         string `json:"idAsesor"`
	Correlative      string `json:"correlative"`
	LogisticsService string `json:"logisticsService"`
	Incoterm         string `json:"incoterm"`
	CargoType        string `json:"cargoType"`
	Courier          string `json:"courier"`
	Regime           string `json:"regime"`
	Customs          string `json:"customs"`
	Naviera          string `json:"naviera"`
}

// LegacyImportExpenses carries the IGV-inclusive expense lines of the old
// contract. The *Final fields are recomputed here as field x 1.18.
type LegacyImportExpenses struct {
	ServicioConsolidadoFinal float64 `json:"servicioConsolidadoFinal"`
	SeparacionCargaFinal     float64 `json:"separacionCargaFinal"`
	InspeccionProductosFinal float64 `json:"inspeccionProductosFinal"`
	GestionCertificadoFinal  float64 `json:"gestionCertificadoFinal"`
	InspeccionFabricaFinal   float64 `json:"inspeccionFabricaFinal"`
	TransporteLocalFinal     float64 `json:"transporteLocalFinal"`
	ObligacionesFiscales     float64 `json:"obligacionesFiscales"`
	TotalGastos              float64 `json:"totalGastos"`
}

// LegacyCalculations is the flat calculations block of the old contract.
type LegacyCalculations struct {
	ComercialValue      float64              `json:"comercialValue"`
	Flete               float64              `json:"flete"`
	Seguro              float64              `json:"seguro"`
	CIF                 float64              `json:"cif"`
	AdValorem           float64              `json:"adValorem"`
	IGV                 float64              `json:"igv"`
	IPM                 float64              `json:"ipm"`
	Antidumping         float64              `json:"antidumping"`
	TotalDerechos       float64              `json:"totalDerechos"`
	ServicioConsolidado float64              `json:"servicioConsolidado"`
	ImportExpenses      LegacyImportExpenses `json:"importExpenses"`
	ShouldExemptTaxes   bool                 `json:"shouldExemptTaxes"`
}

// LegacyVariant is one variant row of the old contract. Exactly one pricing
// family is populated depending on the response tag.
type LegacyVariant struct {
	VariantID string `json:"variantId"`
	Quantity  int64  `json:"quantity"`
	SeCotiza  bool   `json:"seCotiza"`

	PrecioUnitario        *float64 `json:"precio_unitario,omitempty"`
	PrecioExpressUnitario *float64 `json:"precio_express_unitario,omitempty"`
	UnitCost              *float64 `json:"unitCost,omitempty"`
}

// LegacyProduct is one product row of the old contract.
type LegacyProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SeCotiza  bool            `json:"seCotiza"`
	Variants  []LegacyVariant `json:"variants"`
}

// LegacyResponse is the full old-contract payload.
type LegacyResponse struct {
	QuotationID   string              `json:"quotationId"`
	ServiceType   string              `json:"serviceType"`
	QuotationInfo LegacyQuotationInfo `json:"quotationInfo"`
	Calculations  LegacyCalculations  `json:"calculations"`
	Products      []LegacyProduct     `json:"products"`
}

// legacyMarkup re-applies the fixed 18% IGV to a raw service field.
func legacyMarkup(field float64) float64 {
	return types.Float2(pricing.SafeMoney(field).Mul(types.MustMoney("1.18")))
}

// AdaptToLegacyFormat maps the unified DTO into the old contract, branching
// exhaustively on the service type tag.
//
// PENDING responses carry an explicit all-zero calculations block: the legacy
// format has no pending-calculations analogue, and comercialValue stays 0
// even when product pricing is present.
//
// For complete responses the *Final expense fields are recomputed as raw
// field x 1.18 instead of reusing the already-computed expense lines. This
// reproduces the old backend bit-for-bit; when exemptions zeroed a line the
// two figures diverge. Kept intentionally until the legacy endpoint is
// retired.
func AdaptToLegacyFormat(dto ResponseDTO) LegacyResponse {
	out := LegacyResponse{
		QuotationID: dto.QuotationID,
		ServiceType: string(dto.ServiceType),
		QuotationInfo: LegacyQuotationInfo{
			IDAsesor:         dto.QuotationInfo.AdvisorID,
			Correlative:      dto.QuotationInfo.Correlative,
			LogisticsService: dto.QuotationInfo.LogisticsService,
			Incoterm:         dto.QuotationInfo.Incoterm,
			CargoType:        dto.QuotationInfo.CargoType,
			Courier:          dto.QuotationInfo.Courier,
		},
	}

	switch dto.ServiceType {
	case ServicePending:
		out.Calculations = LegacyCalculations{}
		out.Products = legacyProducts(dto.Products, true)

	case ServiceExpress, ServiceMaritime:
		if dto.ServiceType == ServiceMaritime && dto.QuotationInfo.Maritime != nil {
			out.QuotationInfo.Regime = dto.QuotationInfo.Maritime.Regime
			out.QuotationInfo.Customs = dto.QuotationInfo.Maritime.Customs
			out.QuotationInfo.Naviera = dto.QuotationInfo.Maritime.Naviera
		}
		if c := dto.ResponseData.Complete; c != nil {
			out.Calculations = legacyCalculations(c.Calculations)
		}
		out.Products = legacyProducts(dto.Products, false)
	}

	return out
}

func legacyCalculations(calc Calculations) LegacyCalculations {
	fields := calc.ServiceCalculations.Fields
	expenses := LegacyImportExpenses{
		ServicioConsolidadoFinal: legacyMarkup(fields.ConsolidatedService),
		SeparacionCargaFinal:     legacyMarkup(fields.CargoSeparation),
		InspeccionProductosFinal: legacyMarkup(fields.ProductInspection),
		GestionCertificadoFinal:  legacyMarkup(fields.CertificateManagement),
		InspeccionFabricaFinal:   legacyMarkup(fields.FactoryInspection),
		TransporteLocalFinal:     legacyMarkup(fields.LocalTransport),
		ObligacionesFiscales:     calc.ImportExpenses.FiscalObligations,
	}
	expenses.TotalGastos = types.Float2(
		pricing.SafeMoney(expenses.ServicioConsolidadoFinal).
			Add(pricing.SafeMoney(expenses.SeparacionCargaFinal)).
			Add(pricing.SafeMoney(expenses.InspeccionProductosFinal)).
			Add(pricing.SafeMoney(expenses.GestionCertificadoFinal)).
			Add(pricing.SafeMoney(expenses.InspeccionFabricaFinal)).
			Add(pricing.SafeMoney(expenses.TransporteLocalFinal)).
			Add(pricing.SafeMoney(expenses.ObligacionesFiscales)))

	return LegacyCalculations{
		ComercialValue:      calc.DynamicValues.CommercialValue,
		Flete:               calc.DynamicValues.Freight,
		Seguro:              calc.DynamicValues.Insurance,
		CIF:                 calc.DynamicValues.CIF,
		AdValorem:           calc.Taxes.AdValorem,
		IGV:                 calc.Taxes.IGV,
		IPM:                 calc.Taxes.IPM,
		Antidumping:         calc.Taxes.Antidumping,
		TotalDerechos:       calc.Taxes.TotalTaxes,
		ServicioConsolidado: calc.ServiceCalculations.Subtotal,
		ImportExpenses:      expenses,
		ShouldExemptTaxes:   calc.Exemptions.FiscalObligations,
	}
}

func legacyProducts(products []ProductDTO, pending bool) []LegacyProduct {
	out := make([]LegacyProduct, 0, len(products))
	for _, p := range products {
		lp := LegacyProduct{
			ProductID: p.ProductID,
			Name:      p.Name,
			SeCotiza:  p.Quoted,
			Variants:  make([]LegacyVariant, 0, len(p.Variants)),
		}
		for _, v := range p.Variants {
			lv := LegacyVariant{
				VariantID: v.VariantID,
				Quantity:  v.Quantity,
				SeCotiza:  v.Quoted,
			}
			if pending {
				unit, express := 0.0, 0.0
				if v.Pending != nil {
					unit = v.Pending.UnitPrice
					express = v.Pending.ExpressPrice
				}
				lv.PrecioUnitario = &unit
				lv.PrecioExpressUnitario = &express
			} else {
				cost := 0.0
				if v.Complete != nil {
					cost = v.Complete.UnitCost
				}
				lv.UnitCost = &cost
			}
			lp.Variants = append(lp.Variants, lv)
		}
		out = append(out, lp)
	}
	return out
}
