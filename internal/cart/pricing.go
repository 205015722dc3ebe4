package cart

import "github.com/shopspring/decimal"

// BuildPricedCart turns joined cart rows into the aggregated view. It
// is a pure function: line order follows the input, per-line totals are
// unitPrice times orderQuantity, and the grand total is their sum. An
// empty input yields an empty list and a zero total, never nil.
func BuildPricedCart(entries []PricedEntry) PricedCartResponse {
	lines := make([]PricedLine, 0, len(entries))
	grandTotal := decimal.Zero

	for _, entry := range entries {
		total := entry.UnitPrice.Mul(decimal.NewFromInt(int64(entry.OrderQuantity)))
		lines = append(lines, PricedLine{
			ProductID:         entry.ProductID,
			Name:              entry.Name,
			Brand:             entry.Brand,
			Company:           entry.Company,
			UnitPrice:         entry.UnitPrice,
			AvailableQuantity: entry.AvailableQuantity,
			OrderQuantity:     entry.OrderQuantity,
			TotalPrice:        total,
		})
		grandTotal = grandTotal.Add(total)
	}

	return PricedCartResponse{
		CartList:   lines,
		GrandTotal: grandTotal,
	}
}
