package enums

// CartEventType labels the mutation mirrored to the remote order service.
type CartEventType string

const (
	CartEventItemAdded       CartEventType = "cart.item_added"
	CartEventItemRemoved     CartEventType = "cart.item_removed"
	CartEventQuantityChanged CartEventType = "cart.quantity_changed"
	CartEventSupplierChanged CartEventType = "cart.supplier_changed"
	CartEventDeliveryUpdated CartEventType = "cart.delivery_updated"
	CartEventCleared         CartEventType = "cart.cleared"
)

func (c CartEventType) IsValid() bool {
	switch c {
	case CartEventItemAdded,
		CartEventItemRemoved,
		CartEventQuantityChanged,
		CartEventSupplierChanged,
		CartEventDeliveryUpdated,
		CartEventCleared:
		return true
	}
	return false
}
