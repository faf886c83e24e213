package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/domain/pricing"
)

func completeInput() BuildInput {
	return BuildInput{
		QuotationID:      "q1",
		AdvisorID:        "adv1",
		Correlative:      "COT-2026-00042",
		LogisticsService: "Consolidado Express",
		Incoterm:         "FOB",
		CargoType:        "General",
		Courier:          "DHL",
		Products: []ProductInput{
			{
				ProductID: "p1",
				Name:      "Thermal mugs",
				Variants: []VariantInput{
					{VariantID: "v1", Quantity: 10, UnitPrice: 5, Weight: 12.5, CBM: 0.4},
					{VariantID: "v2", Quantity: 5, UnitPrice: 10, Weight: 8, CBM: 0.3},
				},
			},
		},
		Freight:       10,
		Insurance:     5,
		AdValoremRate: 4,
		IGVRate:       16,
		IPMRate:       2,
		Services:      ServiceFieldValues{ConsolidatedService: 100},
	}
}

func TestBuildForPendingService(t *testing.T) {
	in := BuildInput{
		QuotationID: "q1",
		Correlative: "COT-2026-00001",
		Products: []ProductInput{
			{
				ProductID: "p1",
				Name:      "Thermal mugs",
				Variants: []VariantInput{
					{VariantID: "v1", Quantity: 10, UnitPrice: 5, ExpressPrice: 1.5, Weight: 12.5, CBM: 0.4},
					{VariantID: "v2", Quantity: 4, UnitPrice: 2, ExpressPrice: 1, Weight: 3, CBM: 0.1},
				},
			},
		},
	}

	dto := NewDirector().BuildForPendingService(in)

	assert.Equal(t, ServicePending, dto.ServiceType)
	assert.Equal(t, ServicePending, dto.ResponseData.Type)
	require.NotNil(t, dto.ResponseData.Pending)
	assert.Nil(t, dto.ResponseData.Complete)
	assert.Nil(t, dto.QuotationInfo.Maritime)

	info := dto.ResponseData.Pending.BasicInfo
	assert.Equal(t, int64(14), info.TotalQuantity)
	assert.Equal(t, 58.0, info.TotalPrice)   // 10x5 + 4x2
	assert.Equal(t, 19.0, info.TotalExpress) // 10x1.5 + 4x1
	assert.Equal(t, 15.5, info.TotalWeight)
	assert.Equal(t, 0.5, info.TotalCBM)

	require.Len(t, dto.Products, 1)
	p := dto.Products[0]
	require.NotNil(t, p.Pending)
	assert.Nil(t, p.Complete)
	assert.Equal(t, 58.0, p.Pending.TotalPrice)
	require.Len(t, p.Variants, 2)
	require.NotNil(t, p.Variants[0].Pending)
	assert.Equal(t, 5.0, p.Variants[0].Pending.UnitPrice)
	assert.Equal(t, 1.5, p.Variants[0].Pending.ExpressPrice)
	assert.Nil(t, p.Variants[0].Complete)
}

func TestBuildForPendingService_ExcludedVariantLeavesTotals(t *testing.T) {
	sel := pricing.NewSelection()
	sel.SetVariant("p1", "v2", false)

	in := BuildInput{
		QuotationID: "q1",
		Selection:   sel,
		Products: []ProductInput{
			{
				ProductID: "p1",
				Variants: []VariantInput{
					{VariantID: "v1", Quantity: 10, UnitPrice: 5},
					{VariantID: "v2", Quantity: 4, UnitPrice: 2},
				},
			},
		},
	}

	dto := NewDirector().BuildForPendingService(in)

	assert.Equal(t, 50.0, dto.ResponseData.Pending.BasicInfo.TotalPrice)
	assert.Equal(t, int64(10), dto.ResponseData.Pending.BasicInfo.TotalQuantity)
	assert.False(t, dto.Products[0].Variants[1].Quoted)
}

func TestBuildForCompleteService_Express(t *testing.T) {
	dto := NewDirector().BuildForCompleteService(completeInput())

	assert.Equal(t, ServiceExpress, dto.ServiceType)
	assert.Nil(t, dto.QuotationInfo.Maritime, "maritime config only for maritime responses")
	require.NotNil(t, dto.ResponseData.Complete)
	assert.Nil(t, dto.ResponseData.Pending)

	calc := dto.ResponseData.Complete.Calculations
	assert.Equal(t, 100.0, calc.DynamicValues.CommercialValue)
	assert.Equal(t, 115.0, calc.DynamicValues.CIF)
	assert.Equal(t, 4.6, calc.Taxes.AdValorem)
	assert.Equal(t, 18.4, calc.Taxes.IGV)
	assert.Equal(t, 2.3, calc.Taxes.IPM)
	assert.Equal(t, 25.3, calc.Taxes.TotalTaxes)
	assert.Equal(t, 100.0, calc.ServiceCalculations.Subtotal)
	assert.Equal(t, 18.0, calc.ServiceCalculations.IGVServices)
	assert.Equal(t, 118.0, calc.ServiceCalculations.TotalServices)
	assert.Equal(t, 118.0, calc.ImportExpenses.ConsolidatedService)
	assert.Equal(t, 25.3, calc.ImportExpenses.FiscalObligations)
	assert.Equal(t, 143.3, calc.TotalImportCosts)

	require.Len(t, dto.Products, 1)
	p := dto.Products[0]
	require.NotNil(t, p.Complete)
	assert.Nil(t, p.Pending)
	assert.Equal(t, 100.0, p.Complete.Equivalence)
	assert.Equal(t, 143.3, p.Complete.ImportCosts)
	assert.Equal(t, 243.3, p.Complete.TotalCost)
	assert.Equal(t, 16.22, p.Complete.UnitCost)

	require.NotNil(t, p.Variants[0].Complete)
	assert.Equal(t, 12.17, p.Variants[0].Complete.UnitCost) // 121.65 / 10
	assert.Equal(t, 24.33, p.Variants[1].Complete.UnitCost) // 121.65 / 5
	assert.Nil(t, p.Variants[0].Pending)
}

func TestBuildForCompleteService_MaritimeByServiceName(t *testing.T) {
	in := completeInput()
	in.LogisticsService = "Consolidado Maritimo"
	in.Maritime = &MaritimeConfig{Regime: "IMPORTACION", Customs: "Callao", Naviera: "COSCO"}

	dto := NewDirector().BuildForCompleteService(in)

	assert.Equal(t, ServiceMaritime, dto.ServiceType)
	require.NotNil(t, dto.QuotationInfo.Maritime)
	assert.Equal(t, "Callao", dto.QuotationInfo.Maritime.Customs)
}

func TestBuildForCompleteService_MaritimeDefaultsConfig(t *testing.T) {
	in := completeInput()
	in.LogisticsService = "Transporte Maritimo FCL"
	in.Maritime = nil

	dto := NewDirector().BuildForCompleteService(in)

	require.NotNil(t, dto.QuotationInfo.Maritime, "missing maritime input must yield explicit defaults")
	assert.Equal(t, MaritimeConfig{}, *dto.QuotationInfo.Maritime)
}

func TestBuildForCompleteService_EmptyInputIsValid(t *testing.T) {
	dto := NewDirector().BuildForCompleteService(BuildInput{QuotationID: "q1"})

	require.NotNil(t, dto.ResponseData.Complete)
	calc := dto.ResponseData.Complete.Calculations
	assert.Equal(t, 0.0, calc.DynamicValues.CommercialValue)
	assert.Equal(t, 0.0, calc.TotalImportCosts)
	assert.Empty(t, dto.Products)
	assert.Equal(t, PackingList{}, dto.ResponseData.Complete.PackingList)
	assert.Equal(t, CargoHandling{}, dto.ResponseData.Complete.CargoHandling)
}

func TestBuildForCompleteServiceExpanded(t *testing.T) {
	dto := NewDirector().BuildForCompleteServiceExpanded(completeInput())

	complete := dto.ResponseData.Complete
	require.NotNil(t, complete)
	require.NotNil(t, complete.GeneralInformation)
	require.NotNil(t, complete.TaxPercentage)
	require.NotNil(t, complete.ImportCosts)
	require.NotNil(t, complete.QuoteSummary)

	assert.Equal(t, "Consolidado Express", complete.GeneralInformation.ServiceLogistic)
	assert.Equal(t, 16.0, complete.TaxPercentage.IGVRate)
	assert.Equal(t, complete.Calculations.ImportExpenses, complete.ImportCosts.ExpenseFields)
	assert.Equal(t, 100.0, complete.QuoteSummary.CommercialValue)
	assert.Equal(t, 143.3, complete.QuoteSummary.TotalImportCosts)
	// Exact equality: the grand total is summed in decimal, not float64.
	assert.Equal(t, 243.3, complete.QuoteSummary.GrandTotal)
}

func TestBuildForCompleteServiceExpanded_OlderShapeOmitsBlocks(t *testing.T) {
	dto := NewDirector().BuildForCompleteService(completeInput())

	complete := dto.ResponseData.Complete
	assert.Nil(t, complete.GeneralInformation)
	assert.Nil(t, complete.TaxPercentage)
	assert.Nil(t, complete.ImportCosts)
	assert.Nil(t, complete.QuoteSummary)
}

func TestServiceTypeFor(t *testing.T) {
	assert.Equal(t, ServiceMaritime, ServiceTypeFor("Consolidado Maritimo"))
	assert.Equal(t, ServiceMaritime, ServiceTypeFor("Transporte Maritimo LCL"))
	assert.Equal(t, ServiceExpress, ServiceTypeFor("Consolidado Express"))
	assert.Equal(t, ServiceExpress, ServiceTypeFor(""))
}
