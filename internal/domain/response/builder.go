package response

import (
	"freightdesk/internal/core/types"
	"freightdesk/internal/domain/pricing"
)

// VariantInput is the raw administrator form state for one variant.
type VariantInput struct {
	VariantID    string
	Quantity     int64
	UnitPrice    float64
	ExpressPrice float64
	Weight       float64
	CBM          float64
}

// ProductInput is the raw administrator form state for one product.
type ProductInput struct {
	ProductID    string
	Name         string
	AdminComment string
	Variants     []VariantInput
}

// BuildInput is a fresh snapshot of everything a build call needs. Builds are
// deterministic over it; nothing here is shared or mutated.
type BuildInput struct {
	QuotationID      string
	AdvisorID        string
	Correlative      string
	LogisticsService string
	Incoterm         string
	CargoType        string
	Courier          string

	Maritime      *MaritimeConfig
	PackingList   *PackingList
	CargoHandling *CargoHandling

	Products  []ProductInput
	Selection *pricing.Selection

	Freight       float64
	Insurance     float64
	AdValoremRate float64
	IGVRate       float64
	IPMRate       float64
	Antidumping   float64

	Services   ServiceFieldValues
	Exemptions pricing.Exemptions
}

// Builder assembles the pieces of a ResponseDTO from a BuildInput. It never
// fails: missing optional data is silently replaced with zero values so that
// incomplete administrator input still produces a syntactically valid DTO.
type Builder struct {
	in  BuildInput
	sel *pricing.Selection
}

// NewBuilder creates a builder over a snapshot of form state.
func NewBuilder(in BuildInput) *Builder {
	sel := in.Selection
	if sel == nil {
		sel = pricing.NewSelection()
	}
	return &Builder{in: in, sel: sel}
}

// quotationInfo assembles the response header. The maritime block is attached
// only for MARITIME responses, with an explicit all-default config when the
// administrator left it empty.
func (b *Builder) quotationInfo(st ServiceType) QuotationInfo {
	info := QuotationInfo{
		AdvisorID:        b.in.AdvisorID,
		Correlative:      b.in.Correlative,
		LogisticsService: b.in.LogisticsService,
		Incoterm:         b.in.Incoterm,
		CargoType:        b.in.CargoType,
		Courier:          b.in.Courier,
	}
	if st == ServiceMaritime {
		if b.in.Maritime != nil {
			m := *b.in.Maritime
			info.Maritime = &m
		} else {
			info.Maritime = &MaritimeConfig{}
		}
	}
	return info
}

// packingList returns the administrator's packing list or explicit defaults.
func (b *Builder) packingList() PackingList {
	if b.in.PackingList != nil {
		return *b.in.PackingList
	}
	return PackingList{}
}

// cargoHandling returns the handling flags or explicit defaults.
func (b *Builder) cargoHandling() CargoHandling {
	if b.in.CargoHandling != nil {
		return *b.in.CargoHandling
	}
	return CargoHandling{}
}

// serviceFields converts raw form numbers into pricing inputs.
func (b *Builder) serviceFields() pricing.ServiceFields {
	return pricing.ServiceFields{
		ConsolidatedService:   pricing.SafeMoney(b.in.Services.ConsolidatedService),
		CargoSeparation:       pricing.SafeMoney(b.in.Services.CargoSeparation),
		ProductInspection:     pricing.SafeMoney(b.in.Services.ProductInspection),
		CertificateManagement: pricing.SafeMoney(b.in.Services.CertificateManagement),
		FactoryInspection:     pricing.SafeMoney(b.in.Services.FactoryInspection),
		LocalTransport:        pricing.SafeMoney(b.in.Services.LocalTransport),
	}
}

// pendingProducts builds the per-product pending pricing plus the aggregated
// basic info across all included lines.
func (b *Builder) pendingProducts() ([]ProductDTO, BasicInfo) {
	products := make([]ProductDTO, 0, len(b.in.Products))
	var info BasicInfo
	totalPrice := types.Zero()
	totalExpress := types.Zero()
	totalWeight := types.Zero()
	totalCBM := types.Zero()

	for _, p := range b.in.Products {
		dto := ProductDTO{
			ProductID:    p.ProductID,
			Name:         p.Name,
			AdminComment: p.AdminComment,
			Quoted:       b.sel.ProductQuoted(p.ProductID),
			Variants:     make([]VariantDTO, 0, len(p.Variants)),
		}

		pPrice := types.Zero()
		pExpress := types.Zero()
		pWeight := types.Zero()
		pCBM := types.Zero()
		var pQty int64

		for _, v := range p.Variants {
			quoted := b.sel.VariantQuoted(p.ProductID, v.VariantID)
			unitPrice := pricing.SafeMoney(v.UnitPrice)
			expressPrice := pricing.SafeMoney(v.ExpressPrice)

			dto.Variants = append(dto.Variants, VariantDTO{
				VariantID: v.VariantID,
				Quoted:    quoted,
				Quantity:  v.Quantity,
				Pending: &PendingVariantPricing{
					UnitPrice:    types.Float2(unitPrice),
					ExpressPrice: types.Float2(expressPrice),
				},
			})

			if !quoted {
				continue
			}
			pQty += v.Quantity
			pPrice = pPrice.Add(pricing.LineTotal(unitPrice, v.Quantity))
			pExpress = pExpress.Add(pricing.LineTotal(expressPrice, v.Quantity))
			pWeight = pWeight.Add(pricing.SafeMoney(v.Weight))
			pCBM = pCBM.Add(pricing.SafeMoney(v.CBM))
		}

		dto.Pending = &PendingProductPricing{
			TotalPrice:    types.Float2(pPrice),
			TotalWeight:   types.Float2(pWeight),
			TotalCBM:      types.Float2(pCBM),
			TotalQuantity: pQty,
			TotalExpress:  types.Float2(pExpress),
		}
		products = append(products, dto)

		if !dto.Quoted {
			continue
		}
		info.TotalQuantity += pQty
		totalPrice = totalPrice.Add(pPrice)
		totalExpress = totalExpress.Add(pExpress)
		totalWeight = totalWeight.Add(pWeight)
		totalCBM = totalCBM.Add(pCBM)
	}

	info.TotalPrice = types.Float2(totalPrice)
	info.TotalExpress = types.Float2(totalExpress)
	info.TotalWeight = types.Float2(totalWeight)
	info.TotalCBM = types.Float2(totalCBM)
	return products, info
}

// lines flattens every variant into a distribution line with its inclusion
// flag resolved through the selection.
func (b *Builder) lines() []pricing.Line {
	lines := make([]pricing.Line, 0)
	for _, p := range b.in.Products {
		for _, v := range p.Variants {
			lines = append(lines, pricing.Line{
				ProductID: p.ProductID,
				VariantID: v.VariantID,
				Quantity:  v.Quantity,
				UnitPrice: pricing.SafeMoney(v.UnitPrice),
			})
		}
	}
	return pricing.ApplySelection(lines, b.sel)
}

// calculations runs the full pricing pipeline of a complete response and
// returns the computation block together with the distributed lines.
func (b *Builder) calculations(st ServiceType) (Calculations, []pricing.Line) {
	lines := b.lines()

	// Line totals drive the commercial value, which drives everything else.
	commercialValue := types.Zero()
	for i := range lines {
		if lines[i].Included {
			lines[i].Total = types.Round2(pricing.LineTotal(lines[i].UnitPrice, lines[i].Quantity))
			commercialValue = commercialValue.Add(lines[i].Total)
		}
	}

	freight := pricing.SafeMoney(b.in.Freight)
	insurance := pricing.SafeMoney(b.in.Insurance)
	cif := pricing.ComputeCIF(commercialValue, freight, insurance)

	rates := pricing.TaxRates{
		AdValorem: pricing.SafeMoney(b.in.AdValoremRate),
		IGV:       pricing.SafeMoney(b.in.IGVRate),
		IPM:       pricing.SafeMoney(b.in.IPMRate),
	}
	taxes := pricing.ComputeTaxes(cif, rates, pricing.SafeMoney(b.in.Antidumping))

	fields := b.serviceFields()
	services := pricing.ComputeServices(fields)
	expenses := pricing.ComputeImportExpenses(fields, taxes, st == ServiceMaritime, b.in.Exemptions)

	distributed := pricing.Recalculate(lines, expenses.Total)

	calc := Calculations{
		DynamicValues: DynamicValues{
			CommercialValue: types.Float2(commercialValue),
			Freight:         types.Float2(freight),
			Insurance:       types.Float2(insurance),
			CIF:             types.Float2(cif),
		},
		Taxes: Taxes{
			AdValorem:   types.Float2(taxes.AdValorem),
			IGV:         types.Float2(taxes.IGV),
			IPM:         types.Float2(taxes.IPM),
			Antidumping: types.Float2(taxes.Antidumping),
			TotalTaxes:  types.Float2(taxes.Total),
		},
		Exemptions: ExemptionFlags{
			ConsolidatedServiceAir: b.in.Exemptions.ConsolidatedServiceAir,
			ConsolidatedServiceSea: b.in.Exemptions.ConsolidatedServiceSea,
			CargoSeparation:        b.in.Exemptions.CargoSeparation,
			ProductInspection:      b.in.Exemptions.ProductInspection,
			CertificateManagement:  b.in.Exemptions.CertificateManagement,
			FactoryInspection:      b.in.Exemptions.FactoryInspection,
			LocalTransport:         b.in.Exemptions.LocalTransport,
			FiscalObligations:      b.in.Exemptions.FiscalObligations,
		},
		ServiceCalculations: ServiceCalculations{
			Fields:        b.in.Services,
			Subtotal:      types.Float2(services.Subtotal),
			IGVServices:   types.Float2(services.IGVServices),
			TotalServices: types.Float2(services.Total),
		},
		ImportExpenses: ImportExpenseLines{
			ConsolidatedService:   types.Float2(expenses.ConsolidatedService),
			CargoSeparation:       types.Float2(expenses.CargoSeparation),
			ProductInspection:     types.Float2(expenses.ProductInspection),
			CertificateManagement: types.Float2(expenses.CertificateManagement),
			FactoryInspection:     types.Float2(expenses.FactoryInspection),
			LocalTransport:        types.Float2(expenses.LocalTransport),
			FiscalObligations:     types.Float2(expenses.FiscalObligations),
			Total:                 types.Float2(expenses.Total),
		},
		TotalImportCosts: types.Float2(expenses.Total),
	}
	return calc, distributed
}

// completeProducts maps distributed lines back onto per-product and
// per-variant complete pricing.
func (b *Builder) completeProducts(distributed []pricing.Line) []ProductDTO {
	byVariant := make(map[string]pricing.Line, len(distributed))
	for _, l := range distributed {
		byVariant[l.ProductID+"/"+l.VariantID] = l
	}

	products := make([]ProductDTO, 0, len(b.in.Products))
	for _, p := range b.in.Products {
		dto := ProductDTO{
			ProductID:    p.ProductID,
			Name:         p.Name,
			AdminComment: p.AdminComment,
			Quoted:       b.sel.ProductQuoted(p.ProductID),
			Variants:     make([]VariantDTO, 0, len(p.Variants)),
		}

		totalCost := types.Zero()
		importCosts := types.Zero()
		equivalence := types.Zero()
		var qty int64

		for _, v := range p.Variants {
			l := byVariant[p.ProductID+"/"+v.VariantID]
			dto.Variants = append(dto.Variants, VariantDTO{
				VariantID: v.VariantID,
				Quoted:    l.Included,
				Quantity:  v.Quantity,
				Complete: &CompleteVariantPricing{
					UnitCost: types.Float2(l.UnitCost),
				},
			})
			if !l.Included {
				continue
			}
			totalCost = totalCost.Add(l.TotalCost)
			importCosts = importCosts.Add(l.ImportCosts)
			equivalence = equivalence.Add(l.Equivalence)
			qty += v.Quantity
		}

		unitCost := types.Zero()
		if qty > 0 {
			unitCost = totalCost.Div(types.NewMoney(float64(qty)))
		}
		dto.Complete = &CompleteProductPricing{
			UnitCost:    types.Float2(unitCost),
			ImportCosts: types.Float2(importCosts),
			TotalCost:   types.Float2(totalCost),
			Equivalence: types.Float2(equivalence),
		}
		products = append(products, dto)
	}
	return products
}
