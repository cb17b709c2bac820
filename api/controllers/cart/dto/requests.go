package cartdto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierPayload is the catalog supplier record sent alongside an add. The
// cart binds it verbatim on first use.
type SupplierPayload struct {
	ID           uuid.UUID       `json:"id" validate:"required"`
	Name         string          `json:"name"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	MinimumOrder decimal.Decimal `json:"minimum_order"`
	LeadTimeDays *int            `json:"lead_time_days"`
}

// AddItemRequest adds a catalog product to the cart. Older mobile clients send
// the product id under "productId" or plain "id"; ResolveProductID folds the
// spellings into one value.
type AddItemRequest struct {
	ProductID       uuid.UUID       `json:"product_id"`
	LegacyProductID uuid.UUID       `json:"productId"`
	LegacyID        uuid.UUID       `json:"id"`
	Name            string          `json:"name" validate:"required"`
	ImageURL        string          `json:"image_url"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	StockQuantity   int             `json:"stock_quantity"`
	Supplier        SupplierPayload `json:"supplier"`
	ReplaceCart     bool            `json:"replace_cart"`
}

// ResolveProductID returns the first populated product id spelling.
func (r AddItemRequest) ResolveProductID() uuid.UUID {
	if r.ProductID != uuid.Nil {
		return r.ProductID
	}
	if r.LegacyProductID != uuid.Nil {
		return r.LegacyProductID
	}
	return r.LegacyID
}

// UpdateQuantityRequest replaces a line's quantity. Bounds are enforced by the
// cart itself so rejections surface with their domain codes.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetSupplierRequest binds supplier context before any item exists.
type SetSupplierRequest struct {
	Supplier SupplierPayload `json:"supplier"`
}

// DeliveryRequest patches delivery metadata; absent fields keep prior values.
type DeliveryRequest struct {
	Address      *string `json:"address"`
	Date         *string `json:"date"`
	TimeWindow   *string `json:"time_window"`
	Instructions *string `json:"instructions"`
	Urgency      *string `json:"urgency" validate:"omitempty,oneof=normal urgent"`
}
