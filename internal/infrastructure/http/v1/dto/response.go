package dto

import (
	"freightdesk/internal/domain/pricing"
	"freightdesk/internal/domain/response"
)

// ResponseVariantRequest is the administrator's priced form state for one
// variant. SeCotiza left null means "use the default" (quoted).
type ResponseVariantRequest struct {
	VariantID    string  `json:"variantId" binding:"required"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	ExpressPrice float64 `json:"expressPrice"`
	Weight       float64 `json:"weight"`
	CBM          float64 `json:"cbm"`
	SeCotiza     *bool   `json:"seCotiza"`
}

// ResponseProductRequest is the form state for one product.
type ResponseProductRequest struct {
	ProductID    string                   `json:"productId" binding:"required"`
	Name         string                   `json:"name"`
	AdminComment string                   `json:"adminComment"`
	SeCotiza     *bool                    `json:"seCotiza"`
	Variants     []ResponseVariantRequest `json:"variants"`
}

// SubmitResponseRequest is the body for submitting or updating a quotation
// response. Shape picks the build path: "pending" for a not-yet-priced
// acknowledgment, "complete" for a fully priced response.
type SubmitResponseRequest struct {
	Shape string `json:"shape" binding:"required,oneof=pending complete"`

	LogisticsService string `json:"logisticsService"`
	Incoterm         string `json:"incoterm"`
	CargoType        string `json:"cargoType"`
	Courier          string `json:"courier"`

	Maritime      *response.MaritimeConfig `json:"maritimeConfig"`
	PackingList   *response.PackingList    `json:"packingList"`
	CargoHandling *response.CargoHandling  `json:"cargoHandling"`

	Products []ResponseProductRequest `json:"products"`

	Freight       float64 `json:"freight"`
	Insurance     float64 `json:"insurance"`
	AdValoremRate float64 `json:"adValoremRate"`
	IGVRate       float64 `json:"igvRate"`
	IPMRate       float64 `json:"ipmRate"`
	Antidumping   float64 `json:"antidumping"`

	Services   response.ServiceFieldValues `json:"services"`
	Exemptions response.ExemptionFlags     `json:"exemptions"`
}

// ToBuildInput converts the request into a builder snapshot.
func (r *SubmitResponseRequest) ToBuildInput(advisorID string) response.BuildInput {
	sel := pricing.NewSelection()
	products := make([]response.ProductInput, 0, len(r.Products))

	for _, p := range r.Products {
		if p.SeCotiza != nil {
			sel.SetProduct(p.ProductID, *p.SeCotiza)
		}

		variants := make([]response.VariantInput, 0, len(p.Variants))
		for _, v := range p.Variants {
			if v.SeCotiza != nil {
				sel.SetVariant(p.ProductID, v.VariantID, *v.SeCotiza)
			}
			variants = append(variants, response.VariantInput{
				VariantID:    v.VariantID,
				Quantity:     v.Quantity,
				UnitPrice:    v.UnitPrice,
				ExpressPrice: v.ExpressPrice,
				Weight:       v.Weight,
				CBM:          v.CBM,
			})
		}

		products = append(products, response.ProductInput{
			ProductID:    p.ProductID,
			Name:         p.Name,
			AdminComment: p.AdminComment,
			Variants:     variants,
		})
	}

	return response.BuildInput{
		AdvisorID:        advisorID,
		LogisticsService: r.LogisticsService,
		Incoterm:         r.Incoterm,
		CargoType:        r.CargoType,
		Courier:          r.Courier,

		Maritime:      r.Maritime,
		PackingList:   r.PackingList,
		CargoHandling: r.CargoHandling,

		Products:  products,
		Selection: sel,

		Freight:       r.Freight,
		Insurance:     r.Insurance,
		AdValoremRate: r.AdValoremRate,
		IGVRate:       r.IGVRate,
		IPMRate:       r.IPMRate,
		Antidumping:   r.Antidumping,

		Services: r.Services,
		Exemptions: pricing.Exemptions{
			ConsolidatedServiceAir: r.Exemptions.ConsolidatedServiceAir,
			ConsolidatedServiceSea: r.Exemptions.ConsolidatedServiceSea,
			CargoSeparation:        r.Exemptions.CargoSeparation,
			ProductInspection:      r.Exemptions.ProductInspection,
			CertificateManagement:  r.Exemptions.CertificateManagement,
			FactoryInspection:      r.Exemptions.FactoryInspection,
			LocalTransport:         r.Exemptions.LocalTransport,
			FiscalObligations:      r.Exemptions.FiscalObligations,
		},
	}
}

// Shape converts the wire value to the domain shape.
func (r *SubmitResponseRequest) ShapeValue() response.Shape {
	return response.Shape(r.Shape)
}

// ResponseListItem is the listing projection of a stored response.
type ResponseListItem struct {
	ID          string `json:"id"`
	QuotationID string `json:"quotationId"`
	ServiceType string `json:"serviceType"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// NewResponseListItem projects a response for listings.
func NewResponseListItem(r *response.Response) ResponseListItem {
	return ResponseListItem{
		ID:          r.ID.String(),
		QuotationID: r.QuotationID.String(),
		ServiceType: string(r.ServiceType),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
