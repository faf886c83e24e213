package pricing

import (
	"freightdesk/internal/core/types"
)

// Line is one priced product or variant participating in cost distribution.
// ProductID/VariantID identify the line for selection lookups; VariantID is
// empty for product-level lines.
type Line struct {
	ProductID string
	VariantID string

	Quantity  int64
	UnitPrice types.Money

	// Included resolved through a Selection before distribution. Excluded
	// lines keep whatever pricing was last computed but do not enter the
	// commercial-value denominator.
	Included bool

	// Computed fields, all rounded to 2 decimals.
	Total       types.Money
	Equivalence types.Money
	ImportCosts types.Money
	TotalCost   types.Money
	UnitCost    types.Money
}

// LineTotal computes the commercial total of a line: unit price x quantity.
func LineTotal(unitPrice types.Money, quantity int64) types.Money {
	return unitPrice.Mul(types.NewMoney(float64(quantity)))
}

// CommercialValue sums the totals of included lines only.
func CommercialValue(lines []Line) types.Money {
	sum := types.Zero()
	for i := range lines {
		if lines[i].Included {
			sum = sum.Add(lines[i].Total)
		}
	}
	return sum
}

// Recalculate distributes totalImportCosts across the included lines
// proportionally to their commercial value and returns a new slice; the input
// is never mutated. For each included line:
//
//	equivalence = total / commercialValue x 100 (2dp, 0 when the denominator is 0)
//	importCosts = equivalence / 100 x totalImportCosts (2dp)
//	totalCost   = total + importCosts (2dp)
//	unitCost    = totalCost / quantity (2dp, 0 when quantity is 0)
//
// Callers invoke this after any price or quantity edit: an edit changes the
// denominator, so every included line must be redistributed, not just the
// edited one.
func Recalculate(lines []Line, totalImportCosts types.Money) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)

	for i := range out {
		if out[i].Included {
			out[i].Total = types.Round2(LineTotal(out[i].UnitPrice, out[i].Quantity))
		}
	}

	commercialValue := CommercialValue(out)

	for i := range out {
		if !out[i].Included {
			continue
		}
		line := &out[i]

		if commercialValue.IsZero() {
			line.Equivalence = types.Zero()
		} else {
			line.Equivalence = types.Round2(line.Total.Div(commercialValue).Mul(types.NewMoney(100)))
		}

		line.ImportCosts = types.Round2(types.Percent(totalImportCosts, line.Equivalence))
		line.TotalCost = types.Round2(line.Total.Add(line.ImportCosts))

		if line.Quantity > 0 {
			line.UnitCost = types.Round2(line.TotalCost.Div(types.NewMoney(float64(line.Quantity))))
		} else {
			line.UnitCost = types.Zero()
		}
	}

	return out
}

// ApplySelection resolves each line's Included flag through the selection.
// Product-level lines (empty VariantID) use the product flag; variant lines
// use the combined product+variant flag.
func ApplySelection(lines []Line, sel *Selection) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].VariantID == "" {
			out[i].Included = sel.ProductQuoted(out[i].ProductID)
		} else {
			out[i].Included = sel.VariantQuoted(out[i].ProductID, out[i].VariantID)
		}
	}
	return out
}
