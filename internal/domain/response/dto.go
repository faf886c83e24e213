// Package response builds, persists, and adapts administrator quotation
// responses. The wire shape is a tagged union keyed on ServiceType: the
// payload under ResponseData and the pricing entries of every product depend
// entirely on the tag, and all consumers switch on it exhaustively.
package response

import (
	"strings"
)

// ServiceType discriminates the three response shapes.
type ServiceType string

const (
	ServicePending  ServiceType = "PENDING"
	ServiceExpress  ServiceType = "EXPRESS"
	ServiceMaritime ServiceType = "MARITIME"
)

// ServiceTypeFor derives the complete-response tag from the selected
// logistics service name. Any service containing "Maritimo" is maritime,
// everything else ships express.
func ServiceTypeFor(logisticsService string) ServiceType {
	if strings.Contains(logisticsService, "Maritimo") {
		return ServiceMaritime
	}
	return ServiceExpress
}

// MaritimeConfig is the maritime sub-configuration, present only when the
// response tag is MARITIME.
type MaritimeConfig struct {
	Regime          string `json:"regime"`
	Customs         string `json:"customs"`
	Naviera         string `json:"naviera"`
	OriginPort      string `json:"originPort"`
	DestinationPort string `json:"destinationPort"`
	TransitTime     int    `json:"transitTime"`
}

// QuotationInfo carries the response header shared by all shapes.
type QuotationInfo struct {
	AdvisorID        string          `json:"advisorId"`
	Correlative      string          `json:"correlative"`
	LogisticsService string          `json:"logisticsService"`
	Incoterm         string          `json:"incoterm"`
	CargoType        string          `json:"cargoType"`
	Courier          string          `json:"courier"`
	Maritime         *MaritimeConfig `json:"maritimeConfig,omitempty"`
}

// BasicInfo aggregates totals across included lines of a pending response.
type BasicInfo struct {
	TotalCBM      float64 `json:"totalCBM"`
	TotalWeight   float64 `json:"totalWeight"`
	TotalPrice    float64 `json:"totalPrice"`
	TotalExpress  float64 `json:"totalExpress"`
	TotalQuantity int64   `json:"totalQuantity"`
}

// DynamicValues are the commercial base figures of a complete response.
type DynamicValues struct {
	CommercialValue float64 `json:"commercialValue"`
	Freight         float64 `json:"freight"`
	Insurance       float64 `json:"insurance"`
	CIF             float64 `json:"cif"`
}

// Taxes is the customs tax breakdown of a complete response.
type Taxes struct {
	AdValorem   float64 `json:"adValorem"`
	IGV         float64 `json:"igv"`
	IPM         float64 `json:"ipm"`
	Antidumping float64 `json:"antidumping"`
	TotalTaxes  float64 `json:"totalTaxes"`
}

// ServiceFieldValues mirrors the administrator's named service fee inputs.
type ServiceFieldValues struct {
	ConsolidatedService   float64 `json:"consolidatedService"`
	CargoSeparation       float64 `json:"cargoSeparation"`
	ProductInspection     float64 `json:"productInspection"`
	CertificateManagement float64 `json:"certificateManagement"`
	FactoryInspection     float64 `json:"factoryInspection"`
	LocalTransport        float64 `json:"localTransport"`
}

// ServiceCalculations carries the service fee subtotal with its fixed 18% IGV.
type ServiceCalculations struct {
	Fields        ServiceFieldValues `json:"fields"`
	Subtotal      float64            `json:"subtotal"`
	IGVServices   float64            `json:"igvServices"`
	TotalServices float64            `json:"totalServices"`
}

// ExemptionFlags mirrors pricing.Exemptions on the wire.
type ExemptionFlags struct {
	ConsolidatedServiceAir bool `json:"consolidatedServiceAir"`
	ConsolidatedServiceSea bool `json:"consolidatedServiceSea"`
	CargoSeparation        bool `json:"cargoSeparation"`
	ProductInspection      bool `json:"productInspection"`
	CertificateManagement  bool `json:"certificateManagement"`
	FactoryInspection      bool `json:"factoryInspection"`
	LocalTransport         bool `json:"localTransport"`
	FiscalObligations      bool `json:"fiscalObligations"`
}

// ImportExpenseLines are the IGV-inclusive expense lines, zeroed per exemption.
type ImportExpenseLines struct {
	ConsolidatedService   float64 `json:"consolidatedService"`
	CargoSeparation       float64 `json:"cargoSeparation"`
	ProductInspection     float64 `json:"productInspection"`
	CertificateManagement float64 `json:"certificateManagement"`
	FactoryInspection     float64 `json:"factoryInspection"`
	LocalTransport        float64 `json:"localTransport"`
	FiscalObligations     float64 `json:"fiscalObligations"`
	Total                 float64 `json:"total"`
}

// Calculations is the complete-response computation block.
type Calculations struct {
	DynamicValues       DynamicValues       `json:"dynamicValues"`
	Taxes               Taxes               `json:"taxes"`
	Exemptions          ExemptionFlags      `json:"exemptions"`
	ServiceCalculations ServiceCalculations `json:"serviceCalculations"`
	ImportExpenses      ImportExpenseLines  `json:"importExpenses"`
	TotalImportCosts    float64             `json:"totalImportCosts"`
}

// PackingList describes the physical cargo of a complete response.
// All fields default to zero when the administrator has not filled them in.
type PackingList struct {
	Boxes         int     `json:"boxes"`
	TotalWeight   float64 `json:"totalWeight"`
	TotalCBM      float64 `json:"totalCBM"`
	QuantityUnits int64   `json:"quantityUnits"`
}

// CargoHandling captures special handling flags for the shipment.
type CargoHandling struct {
	FragileProduct bool `json:"fragileProduct"`
	StackProduct   bool `json:"stackProduct"`
	KeepUpright    bool `json:"keepUpright"`
	HighValue      bool `json:"highValue"`
}

// GeneralInformation duplicates the service selection in the expanded shape.
type GeneralInformation struct {
	ServiceLogistic string `json:"serviceLogistic"`
	Incoterm        string `json:"incoterm"`
	CargoType       string `json:"cargoType"`
	Courier         string `json:"courier"`
}

// TaxPercentage echoes the configured rates in the expanded shape.
type TaxPercentage struct {
	AdValoremRate     float64 `json:"adValoremRate"`
	IGVRate           float64 `json:"igvRate"`
	IPMRate           float64 `json:"ipmRate"`
	AntidumpingAmount float64 `json:"antidumpingAmount"`
}

// ImportCosts groups the expense lines in the expanded shape.
type ImportCosts struct {
	ExpenseFields ImportExpenseLines `json:"expenseFields"`
	TotalExpenses float64            `json:"totalExpenses"`
}

// QuoteSummary is the expanded-shape rollup presented to the customer.
type QuoteSummary struct {
	CommercialValue  float64 `json:"commercialValue"`
	TotalExpenses    float64 `json:"totalExpenses"`
	TotalTaxes       float64 `json:"totalTaxes"`
	TotalImportCosts float64 `json:"totalImportCosts"`
	GrandTotal       float64 `json:"grandTotal"`
}

// PendingData is the payload of a PENDING response.
type PendingData struct {
	BasicInfo BasicInfo `json:"basicInfo"`
}

// CompleteData is the payload of an EXPRESS or MARITIME response.
// The expanded blocks are populated only by the expanded builder; the older
// complete shape leaves them nil and they are omitted from serialization.
type CompleteData struct {
	Calculations  Calculations  `json:"calculations"`
	PackingList   PackingList   `json:"packingList"`
	CargoHandling CargoHandling `json:"cargoHandling"`

	GeneralInformation *GeneralInformation `json:"generalInformation,omitempty"`
	TaxPercentage      *TaxPercentage      `json:"taxPercentage,omitempty"`
	ImportCosts        *ImportCosts        `json:"importCosts,omitempty"`
	QuoteSummary       *QuoteSummary       `json:"quoteSummary,omitempty"`
}

// ResponseData is the tagged payload union. Exactly one of Pending/Complete
// is non-nil, matching Type.
type ResponseData struct {
	Type     ServiceType   `json:"type"`
	Pending  *PendingData  `json:"pending,omitempty"`
	Complete *CompleteData `json:"complete,omitempty"`
}

// PendingProductPricing is the per-product pricing of a PENDING response.
type PendingProductPricing struct {
	TotalPrice    float64 `json:"totalPrice"`
	TotalWeight   float64 `json:"totalWeight"`
	TotalCBM      float64 `json:"totalCBM"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalExpress  float64 `json:"totalExpress"`
}

// CompleteProductPricing is the per-product pricing of a complete response.
type CompleteProductPricing struct {
	UnitCost    float64 `json:"unitCost"`
	ImportCosts float64 `json:"importCosts"`
	TotalCost   float64 `json:"totalCost"`
	Equivalence float64 `json:"equivalence"`
}

// PendingVariantPricing is the per-variant pricing of a PENDING response.
type PendingVariantPricing struct {
	UnitPrice    float64 `json:"unitPrice"`
	ExpressPrice float64 `json:"expressPrice"`
}

// CompleteVariantPricing is the per-variant pricing of a complete response.
type CompleteVariantPricing struct {
	UnitCost float64 `json:"unitCost"`
}

// VariantDTO is one variant entry of a response. The pricing pointer matching
// the response tag is set; the other is omitted, never null-filled.
type VariantDTO struct {
	VariantID string `json:"variantId"`
	Quoted    bool   `json:"seCotiza"`
	Quantity  int64  `json:"quantity"`

	Pending  *PendingVariantPricing  `json:"pendingPricing,omitempty"`
	Complete *CompleteVariantPricing `json:"completePricing,omitempty"`
}

// ProductDTO is one product entry of a response.
type ProductDTO struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	AdminComment string `json:"adminComment,omitempty"`
	Quoted       bool   `json:"seCotiza"`

	Pending  *PendingProductPricing  `json:"pendingPricing,omitempty"`
	Complete *CompleteProductPricing `json:"completePricing,omitempty"`

	Variants []VariantDTO `json:"variants"`
}

// ResponseDTO is the full serialized administrator response.
type ResponseDTO struct {
	QuotationID   string        `json:"quotationId"`
	ServiceType   ServiceType   `json:"serviceType"`
	QuotationInfo QuotationInfo `json:"quotationInfo"`
	ResponseData  ResponseData  `json:"responseData"`
	Products      []ProductDTO  `json:"products"`
}
