package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/internal/cart"
	"github.com/harvestlink-app/harvestlink-backend/internal/ordersync"
	"github.com/harvestlink-app/harvestlink-backend/pkg/auth"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

type cartStore interface {
	Get(ctx context.Context, sessionKey string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionKey string) (*cart.Cart, error)
}

type orderSubmitter interface {
	SubmitOrder(ctx context.Context, credential string, submission ordersync.OrderSubmission) (uuid.UUID, error)
}

// Receipt is returned to the caller once the order service accepted the cart.
type Receipt struct {
	OrderID     uuid.UUID       `json:"order_id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// Service finalizes checkout: it consults the gate, submits the order
// synchronously, and clears the cart on success.
type Service interface {
	Submit(ctx context.Context, sessionKey string) (*Receipt, error)
}

type service struct {
	carts  cartStore
	orders orderSubmitter
	logg   *logger.Logger
}

// NewService builds the checkout service.
func NewService(carts cartStore, orders orderSubmitter, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, orders: orders, logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, sessionKey string) (*Receipt, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}

	current, err := s.carts.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if blockers := current.CheckoutBlockers(); len(blockers) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeCheckoutBlocked, "cart is not ready for checkout").
			WithDetails(map[string]any{"blockers": blockers})
	}

	credential := auth.BearerFromContext(ctx)
	if credential == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	totals := current.Totals()
	submission := ordersync.OrderSubmission{
		SupplierID:  current.Supplier.ID,
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Total:       totals.Total,
		Address:     current.Delivery.Address,
		Date:        current.Delivery.Date,
		TimeWindow:  current.Delivery.TimeWindow,
		Notes:       current.Delivery.Instructions,
		Urgency:     string(current.Delivery.Urgency),
	}
	for _, item := range current.Items {
		submission.Lines = append(submission.Lines, ordersync.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID, err := s.orders.SubmitOrder(ctx, credential, submission)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}

	if _, err := s.carts.Clear(ctx, sessionKey); err != nil {
		// The order exists remotely; a failed local clear should not hide it.
		logCtx := s.logg.WithSessionKey(ctx, sessionKey)
		s.logg.Error(logCtx, "clearing cart after checkout", err)
	}

	return &Receipt{
		OrderID:     orderID,
		SupplierID:  submission.SupplierID,
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Total:       totals.Total,
		ItemCount:   totals.ItemCount,
	}, nil
}
