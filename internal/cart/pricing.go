package cart

import (
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

// UrgentSurcharge is the fixed delivery-fee addition for urgent deliveries,
// in currency units.
var UrgentSurcharge = decimal.NewFromInt(10)

// Totals holds every derived amount, recomputed on demand so the figures
// always reflect the latest mutation within the same operation.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// ComputeTotals derives subtotal, delivery fee, grand total, and item count
// from the given state. Pure: no side effects, no caching.
func ComputeTotals(items []Item, supplier *Supplier, urgency enums.Urgency) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}

	fee := decimal.Zero
	if supplier != nil {
		fee = supplier.DeliveryFee
		if urgency.IsUrgent() {
			fee = fee.Add(UrgentSurcharge)
		}
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
		ItemCount:   count,
	}
}
