package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
)

// Item is one purchasable line in the cart. Stock and minimum quantities are
// catalog facts captured at add time; the cart never refreshes them itself.
type Item struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	ImageURL        string          `json:"image_url,omitempty"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	StockQuantity   int             `json:"stock_quantity"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
}

// Supplier is the single vendor the cart is bound to. It is created
// implicitly by the first add and cleared when the last item drains.
type Supplier struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	MinimumOrder decimal.Decimal `json:"minimum_order"`
	LeadTimeDays *int            `json:"lead_time_days,omitempty"`
}

// Delivery holds logistics metadata. It is independent of product selection
// and survives supplier switches and item drains.
type Delivery struct {
	Address      string        `json:"address"`
	Date         string        `json:"date"`
	TimeWindow   string        `json:"time_window,omitempty"`
	Instructions string        `json:"instructions,omitempty"`
	Urgency      enums.Urgency `json:"urgency"`
}

// DeliveryPatch shallow-merges into Delivery; nil fields keep prior values.
type DeliveryPatch struct {
	Address      *string
	Date         *string
	TimeWindow   *string
	Instructions *string
	Urgency      *enums.Urgency
}

// Cart is the aggregate root: an ordered item list keyed by product id, an
// optional bound supplier, and delivery metadata.
type Cart struct {
	Items    []Item    `json:"items"`
	Supplier *Supplier `json:"supplier,omitempty"`
	Delivery Delivery  `json:"delivery"`
}

// NewCart returns the empty aggregate.
func NewCart() *Cart {
	return &Cart{Delivery: Delivery{Urgency: enums.UrgencyNormal}}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) find(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// ItemByProduct returns the line for the product, if present.
func (c *Cart) ItemByProduct(productID uuid.UUID) (Item, bool) {
	if idx := c.find(productID); idx >= 0 {
		return c.Items[idx], true
	}
	return Item{}, false
}

// AddItem merges or appends a line, assuming the supplier has already been
// reconciled by the guard. A fresh add below the minimum is floored to it; a
// merge that would exceed stock is rejected leaving the prior quantity intact.
func (c *Cart) AddItem(supplier Supplier, item Item, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	if c.Supplier != nil && c.Supplier.ID != supplier.ID {
		return supplierConflictError(*c.Supplier, supplier)
	}

	if idx := c.find(item.ProductID); idx >= 0 {
		existing := c.Items[idx]
		merged := existing.Quantity + quantity
		if merged > existing.StockQuantity {
			return insufficientStockError(merged, existing.StockQuantity)
		}
		c.Items[idx].Quantity = merged
		return nil
	}

	accepted, err := clampNewQuantity(quantity, item.MinimumQuantity, item.StockQuantity)
	if err != nil {
		return err
	}
	item.Quantity = accepted
	item.SupplierID = supplier.ID
	if item.SupplierName == "" {
		item.SupplierName = supplier.Name
	}

	if c.Supplier == nil {
		bound := supplier
		c.Supplier = &bound
	}
	c.Items = append(c.Items, item)
	return nil
}

// RemoveItem deletes the line by product id. Removing an absent key is a
// no-op. Draining the last item clears the bound supplier.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	idx := c.find(productID)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	if len(c.Items) == 0 {
		c.Items = nil
		c.Supplier = nil
	}
}

// UpdateQuantity replaces a line's quantity in place after validating it
// against that line's own minimum and stock. State is untouched on rejection.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	idx := c.find(productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	item := c.Items[idx]
	if err := validateQuantityUpdate(quantity, item.MinimumQuantity, item.StockQuantity); err != nil {
		return err
	}
	c.Items[idx].Quantity = quantity
	return nil
}

// IncrementQuantity bumps the line by one, subject to the stock ceiling.
func (c *Cart) IncrementQuantity(productID uuid.UUID) error {
	idx := c.find(productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	return c.UpdateQuantity(productID, c.Items[idx].Quantity+1)
}

// DecrementQuantity lowers the line by one. Crossing below the minimum is
// treated as intent to remove the line, never as an error.
func (c *Cart) DecrementQuantity(productID uuid.UUID) (removed bool, err error) {
	idx := c.find(productID)
	if idx < 0 {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	next := c.Items[idx].Quantity - 1
	if next < c.Items[idx].MinimumQuantity {
		c.RemoveItem(productID)
		return true, nil
	}
	c.Items[idx].Quantity = next
	return false, nil
}

// SetSupplier binds supplier context directly, used before any item exists.
// Rebinding a populated cart to a different supplier is a conflict.
func (c *Cart) SetSupplier(supplier Supplier) error {
	if !c.IsEmpty() && c.Supplier != nil && c.Supplier.ID != supplier.ID {
		return supplierConflictError(*c.Supplier, supplier)
	}
	bound := supplier
	c.Supplier = &bound
	return nil
}

// ReplaceSupplier discards all items and binds the new supplier. Delivery
// metadata is logistics, not product selection, so it is retained.
func (c *Cart) ReplaceSupplier(supplier Supplier) {
	c.Items = nil
	bound := supplier
	c.Supplier = &bound
}

// MergeDelivery applies the non-nil patch fields over current values.
func (c *Cart) MergeDelivery(patch DeliveryPatch) {
	if patch.Address != nil {
		c.Delivery.Address = *patch.Address
	}
	if patch.Date != nil {
		c.Delivery.Date = *patch.Date
	}
	if patch.TimeWindow != nil {
		c.Delivery.TimeWindow = *patch.TimeWindow
	}
	if patch.Instructions != nil {
		c.Delivery.Instructions = *patch.Instructions
	}
	if patch.Urgency != nil && patch.Urgency.IsValid() {
		c.Delivery.Urgency = *patch.Urgency
	}
}

// Clear resets items, supplier, and delivery metadata in one step.
func (c *Cart) Clear() {
	c.Items = nil
	c.Supplier = nil
	c.Delivery = Delivery{Urgency: enums.UrgencyNormal}
}

// Totals recomputes all derived amounts from current state.
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.Items, c.Supplier, c.Delivery.Urgency)
}

// Checkout gate blocker labels.
const (
	BlockerCartEmpty         = "cart_empty"
	BlockerBelowMinimumOrder = "below_minimum_order"
	BlockerMissingAddress    = "missing_address"
	BlockerMissingDate       = "missing_date"
)

// CheckoutBlockers lists every unmet checkout precondition.
func (c *Cart) CheckoutBlockers() []string {
	var blockers []string
	if c.IsEmpty() {
		blockers = append(blockers, BlockerCartEmpty)
	} else if c.Supplier != nil && c.Totals().Subtotal.LessThan(c.Supplier.MinimumOrder) {
		blockers = append(blockers, BlockerBelowMinimumOrder)
	}
	if c.Delivery.Address == "" {
		blockers = append(blockers, BlockerMissingAddress)
	}
	if c.Delivery.Date == "" {
		blockers = append(blockers, BlockerMissingDate)
	}
	return blockers
}

// CanCheckout is the single gate consulted before order submission.
func (c *Cart) CanCheckout() bool {
	return len(c.CheckoutBlockers()) == 0
}

func supplierConflictError(current, incoming Supplier) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeSupplierConflict, "cart is bound to a different supplier").
		WithDetails(map[string]any{
			"current_supplier_id":    current.ID,
			"current_supplier_name":  current.Name,
			"incoming_supplier_id":   incoming.ID,
			"incoming_supplier_name": incoming.Name,
		})
}
