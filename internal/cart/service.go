package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harvestlink-app/harvestlink-backend/pkg/auth"
	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
	"github.com/harvestlink-app/harvestlink-backend/pkg/metrics"
)

// Service exposes every cart operation. Mutations are locally authoritative:
// the snapshot write commits the change, and the mirror to the order service
// is dispatched afterwards without ever blocking or reverting the caller.
type Service interface {
	Get(ctx context.Context, sessionKey string) (*Cart, error)
	AddItem(ctx context.Context, sessionKey string, input AddItemInput, confirm Confirmer) (*Cart, error)
	RemoveItem(ctx context.Context, sessionKey string, productID uuid.UUID) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*Cart, error)
	IncrementQuantity(ctx context.Context, sessionKey string, productID uuid.UUID) (*Cart, error)
	DecrementQuantity(ctx context.Context, sessionKey string, productID uuid.UUID) (*Cart, error)
	SetSupplier(ctx context.Context, sessionKey string, supplier Supplier) (*Cart, error)
	SetDeliveryDetails(ctx context.Context, sessionKey string, patch DeliveryPatch) (*Cart, error)
	Clear(ctx context.Context, sessionKey string) (*Cart, error)
}

// AddItemInput carries the catalog-supplied facts for one add: the item with
// its stock/minimum ceilings and the full supplier record to bind on first
// use.
type AddItemInput struct {
	Supplier Supplier
	Item     Item
	Quantity int
}

type service struct {
	snapshots SnapshotRepository
	mirror    Mirror
	guard     SupplierGuard
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
}

// NewService builds the cart service backed by the provided stack.
func NewService(snapshots SnapshotRepository, mirror Mirror, logg *logger.Logger, cartMetrics *metrics.CartMetrics) (Service, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if mirror == nil {
		mirror = NopMirror{}
	}
	return &service{
		snapshots: snapshots,
		mirror:    mirror,
		logg:      logg,
		metrics:   cartMetrics,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionKey string) (*Cart, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	return s.snapshots.Load(ctx, sessionKey)
}

func (s *service) AddItem(ctx context.Context, sessionKey string, input AddItemInput, confirm Confirmer) (*Cart, error) {
	if input.Item.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Supplier.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id is required")
	}

	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	switch s.guard.Reconcile(ctx, cart.Supplier, input.Supplier, confirm) {
	case AllowAfterReset:
		cart.ReplaceSupplier(input.Supplier)
	case Deny:
		return nil, supplierConflictError(*cart.Supplier, input.Supplier)
	}

	if err := cart.AddItem(input.Supplier, input.Item, input.Quantity); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, sessionKey, cart, "add_item"); err != nil {
		return nil, err
	}

	line, _ := cart.ItemByProduct(input.Item.ProductID)
	s.mirrorMutation(ctx, sessionKey, enums.CartEventItemAdded, cart, line)
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionKey string, productID uuid.UUID) (*Cart, error) {
	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	line, existed := cart.ItemByProduct(productID)
	cart.RemoveItem(productID)
	if !existed {
		// Idempotent removal: nothing changed, nothing to persist or mirror.
		return cart, nil
	}

	if err := s.commit(ctx, sessionKey, cart, "remove_item"); err != nil {
		return nil, err
	}

	line.Quantity = 0
	s.mirrorMutation(ctx, sessionKey, enums.CartEventItemRemoved, cart, line)
	return cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*Cart, error) {
	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, sessionKey, cart, "update_quantity"); err != nil {
		return nil, err
	}

	line, _ := cart.ItemByProduct(productID)
	s.mirrorMutation(ctx, sessionKey, enums.CartEventQuantityChanged, cart, line)
	return cart, nil
}

func (s *service) IncrementQuantity(ctx context.Context, sessionKey string, productID uuid.UUID) (*Cart, error) {
	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := cart.IncrementQuantity(productID); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, sessionKey, cart, "increment_quantity"); err != nil {
		return nil, err
	}

	line, _ := cart.ItemByProduct(productID)
	s.mirrorMutation(ctx, sessionKey, enums.CartEventQuantityChanged, cart, line)
	return cart, nil
}

func (s *service) DecrementQuantity(ctx context.Context, sessionKey string, productID uuid.UUID) (*Cart, error) {
	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	line, _ := cart.ItemByProduct(productID)
	removed, err := cart.DecrementQuantity(productID)
	if err != nil {
		return nil, err
	}

	op := "decrement_quantity"
	event := enums.CartEventQuantityChanged
	if removed {
		op = "remove_item"
		event = enums.CartEventItemRemoved
		line.Quantity = 0
	} else {
		line, _ = cart.ItemByProduct(productID)
	}

	if err := s.commit(ctx, sessionKey, cart, op); err != nil {
		return nil, err
	}

	s.mirrorMutation(ctx, sessionKey, event, cart, line)
	return cart, nil
}

func (s *service) SetSupplier(ctx context.Context, sessionKey string, supplier Supplier) (*Cart, error) {
	if supplier.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id is required")
	}

	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := cart.SetSupplier(supplier); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, sessionKey, cart, "set_supplier"); err != nil {
		return nil, err
	}

	s.mirrorMutation(ctx, sessionKey, enums.CartEventSupplierChanged, cart, Item{SupplierID: supplier.ID})
	return cart, nil
}

func (s *service) SetDeliveryDetails(ctx context.Context, sessionKey string, patch DeliveryPatch) (*Cart, error) {
	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	cart.MergeDelivery(patch)

	if err := s.commit(ctx, sessionKey, cart, "set_delivery"); err != nil {
		return nil, err
	}

	s.mirrorMutation(ctx, sessionKey, enums.CartEventDeliveryUpdated, cart, Item{})
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionKey string) (*Cart, error) {
	cart, err := s.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.commit(ctx, sessionKey, cart, "clear"); err != nil {
		return nil, err
	}

	s.mirrorMutation(ctx, sessionKey, enums.CartEventCleared, cart, Item{})
	return cart, nil
}

func (s *service) load(ctx context.Context, sessionKey string) (*Cart, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}
	return s.snapshots.Load(ctx, sessionKey)
}

func (s *service) commit(ctx context.Context, sessionKey string, cart *Cart, op string) error {
	if err := s.snapshots.Save(ctx, sessionKey, cart); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	s.metrics.IncMutation(op)
	return nil
}

// mirrorMutation hands the committed mutation to the mirror. The credential
// travels with the event; delivery happens after this function returns and
// its outcome never reaches the caller.
func (s *service) mirrorMutation(ctx context.Context, sessionKey string, event enums.CartEventType, cart *Cart, line Item) {
	ev := MirrorEvent{
		Type:       event,
		SessionKey: sessionKey,
		Credential: auth.BearerFromContext(ctx),
		ProductID:  line.ProductID,
		Name:       line.Name,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		SupplierID: line.SupplierID,
	}
	if ev.SupplierID == uuid.Nil && cart.Supplier != nil {
		ev.SupplierID = cart.Supplier.ID
	}
	s.mirror.Enqueue(ev)
}
