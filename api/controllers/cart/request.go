package cart

import (
	cartdto "github.com/harvestlink-app/harvestlink-backend/api/controllers/cart/dto"
	cartsvc "github.com/harvestlink-app/harvestlink-backend/internal/cart"
	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

func toSupplier(payload cartdto.SupplierPayload) cartsvc.Supplier {
	return cartsvc.Supplier{
		ID:           payload.ID,
		Name:         payload.Name,
		DeliveryFee:  payload.DeliveryFee,
		MinimumOrder: payload.MinimumOrder,
		LeadTimeDays: payload.LeadTimeDays,
	}
}

func toAddItemInput(payload cartdto.AddItemRequest) cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		Supplier: toSupplier(payload.Supplier),
		Item: cartsvc.Item{
			ProductID:       payload.ResolveProductID(),
			Name:            payload.Name,
			ImageURL:        payload.ImageURL,
			Unit:            payload.Unit,
			UnitPrice:       payload.UnitPrice,
			MinimumQuantity: payload.MinimumQuantity,
			StockQuantity:   payload.StockQuantity,
		},
		Quantity: payload.Quantity,
	}
}

func toDeliveryPatch(payload cartdto.DeliveryRequest) cartsvc.DeliveryPatch {
	patch := cartsvc.DeliveryPatch{
		Address:      payload.Address,
		Date:         payload.Date,
		TimeWindow:   payload.TimeWindow,
		Instructions: payload.Instructions,
	}
	if payload.Urgency != nil {
		urgency := enums.ParseUrgency(*payload.Urgency)
		patch.Urgency = &urgency
	}
	return patch
}
