package cartdto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

// CartView is the authoritative cart state exposed through the API, including
// the derived totals and the checkout gate verdict.
type CartView struct {
	Items       []CartItemView `json:"items"`
	Supplier    *SupplierView  `json:"supplier,omitempty"`
	Delivery    DeliveryView   `json:"delivery"`
	Totals      TotalsView     `json:"totals"`
	CanCheckout bool           `json:"can_checkout"`
	Blockers    []string       `json:"blockers,omitempty"`
}

type CartItemView struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	ImageURL        string          `json:"image_url,omitempty"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	StockQuantity   int             `json:"stock_quantity"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

type SupplierView struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	MinimumOrder decimal.Decimal `json:"minimum_order"`
	LeadTimeDays *int            `json:"lead_time_days,omitempty"`
}

type DeliveryView struct {
	Address      string        `json:"address"`
	Date         string        `json:"date"`
	TimeWindow   string        `json:"time_window,omitempty"`
	Instructions string        `json:"instructions,omitempty"`
	Urgency      enums.Urgency `json:"urgency"`
}

type TotalsView struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}
