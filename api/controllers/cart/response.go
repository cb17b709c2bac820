package cart

import (
	"github.com/shopspring/decimal"

	cartdto "github.com/harvestlink-app/harvestlink-backend/api/controllers/cart/dto"
	cartsvc "github.com/harvestlink-app/harvestlink-backend/internal/cart"
)

func newCartView(record *cartsvc.Cart) cartdto.CartView {
	items := make([]cartdto.CartItemView, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, cartdto.CartItemView{
			ProductID:       item.ProductID,
			Name:            item.Name,
			ImageURL:        item.ImageURL,
			Unit:            item.Unit,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			MinimumQuantity: item.MinimumQuantity,
			StockQuantity:   item.StockQuantity,
			SupplierID:      item.SupplierID,
			SupplierName:    item.SupplierName,
			LineTotal:       item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	var supplier *cartdto.SupplierView
	if record.Supplier != nil {
		supplier = &cartdto.SupplierView{
			ID:           record.Supplier.ID,
			Name:         record.Supplier.Name,
			DeliveryFee:  record.Supplier.DeliveryFee,
			MinimumOrder: record.Supplier.MinimumOrder,
			LeadTimeDays: record.Supplier.LeadTimeDays,
		}
	}

	totals := record.Totals()
	blockers := record.CheckoutBlockers()

	return cartdto.CartView{
		Items:    items,
		Supplier: supplier,
		Delivery: cartdto.DeliveryView{
			Address:      record.Delivery.Address,
			Date:         record.Delivery.Date,
			TimeWindow:   record.Delivery.TimeWindow,
			Instructions: record.Delivery.Instructions,
			Urgency:      record.Delivery.Urgency,
		},
		Totals: cartdto.TotalsView{
			Subtotal:    totals.Subtotal,
			DeliveryFee: totals.DeliveryFee,
			Total:       totals.Total,
			ItemCount:   totals.ItemCount,
		},
		CanCheckout: len(blockers) == 0,
		Blockers:    blockers,
	}
}
