package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/internal/cart"
	"github.com/harvestlink-app/harvestlink-backend/internal/ordersync"
	"github.com/harvestlink-app/harvestlink-backend/pkg/auth"
	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

type stubCartStore struct {
	cart     *cart.Cart
	clearErr error
	cleared  bool
}

func (s *stubCartStore) Get(context.Context, string) (*cart.Cart, error) {
	return s.cart, nil
}

func (s *stubCartStore) Clear(context.Context, string) (*cart.Cart, error) {
	if s.clearErr != nil {
		return nil, s.clearErr
	}
	s.cleared = true
	return cart.NewCart(), nil
}

type stubSubmitter struct {
	orderID    uuid.UUID
	err        error
	credential string
	submission ordersync.OrderSubmission
	called     bool
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, credential string, submission ordersync.OrderSubmission) (uuid.UUID, error) {
	s.called = true
	s.credential = credential
	s.submission = submission
	return s.orderID, s.err
}

func readyCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.NewCart()
	supplier := cart.Supplier{
		ID:           uuid.New(),
		Name:         "Green Valley Farm",
		DeliveryFee:  decimal.NewFromInt(5),
		MinimumOrder: decimal.NewFromInt(20),
	}
	item := cart.Item{
		ProductID:       uuid.New(),
		Name:            "Tomatoes",
		UnitPrice:       decimal.NewFromInt(4),
		MinimumQuantity: 1,
		StockQuantity:   100,
	}
	if err := c.AddItem(supplier, item, 10); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	address := "12 Market St"
	date := "2026-09-03"
	urgent := enums.UrgencyUrgent
	c.MergeDelivery(cart.DeliveryPatch{Address: &address, Date: &date, Urgency: &urgent})
	return c
}

func newTestService(t *testing.T, store *stubCartStore, submitter *stubSubmitter) Service {
	t.Helper()
	svc, err := NewService(store, submitter, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitBlockedCart(t *testing.T) {
	t.Parallel()

	store := &stubCartStore{cart: cart.NewCart()}
	submitter := &stubSubmitter{}
	svc := newTestService(t, store, submitter)

	_, err := svc.Submit(context.Background(), "session-1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeCheckoutBlocked) {
		t.Fatalf("expected checkout blocked, got %v", err)
	}
	if submitter.called {
		t.Fatal("blocked checkout must not reach the order service")
	}

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %+v", typed.Details())
	}
	if _, ok := details["blockers"]; !ok {
		t.Fatalf("expected blockers in details, got %+v", details)
	}
}

func TestSubmitRequiresCredential(t *testing.T) {
	t.Parallel()

	store := &stubCartStore{cart: readyCart(t)}
	svc := newTestService(t, store, &stubSubmitter{})

	_, err := svc.Submit(context.Background(), "session-1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	t.Parallel()

	c := readyCart(t)
	store := &stubCartStore{cart: c}
	submitter := &stubSubmitter{orderID: uuid.New()}
	svc := newTestService(t, store, submitter)

	ctx := auth.ContextWithBearer(context.Background(), "token-abc")
	receipt, err := svc.Submit(ctx, "session-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if receipt.OrderID != submitter.orderID {
		t.Fatalf("unexpected order id %s", receipt.OrderID)
	}
	if receipt.SupplierID != c.Supplier.ID {
		t.Fatalf("unexpected supplier id %s", receipt.SupplierID)
	}
	if !receipt.Subtotal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected subtotal 40, got %s", receipt.Subtotal)
	}
	// Urgent delivery: base fee 5 plus the surcharge.
	if !receipt.DeliveryFee.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected delivery fee 15, got %s", receipt.DeliveryFee)
	}
	if !receipt.Total.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected total 55, got %s", receipt.Total)
	}

	if submitter.credential != "token-abc" {
		t.Fatalf("expected bearer forwarded, got %q", submitter.credential)
	}
	if len(submitter.submission.Lines) != 1 || submitter.submission.Lines[0].Quantity != 10 {
		t.Fatalf("unexpected submission lines: %+v", submitter.submission.Lines)
	}
	if submitter.submission.Urgency != string(enums.UrgencyUrgent) {
		t.Fatalf("expected urgency forwarded, got %q", submitter.submission.Urgency)
	}
	if !store.cleared {
		t.Fatal("expected cart cleared after successful submission")
	}
}

func TestSubmitOrderFailureKeepsCart(t *testing.T) {
	t.Parallel()

	store := &stubCartStore{cart: readyCart(t)}
	submitter := &stubSubmitter{err: errors.New("unreachable")}
	svc := newTestService(t, store, submitter)

	ctx := auth.ContextWithBearer(context.Background(), "token-abc")
	_, err := svc.Submit(ctx, "session-1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if store.cleared {
		t.Fatal("failed submission must not clear the cart")
	}
}

func TestSubmitClearFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	store := &stubCartStore{cart: readyCart(t), clearErr: errors.New("disk full")}
	submitter := &stubSubmitter{orderID: uuid.New()}
	svc := newTestService(t, store, submitter)

	ctx := auth.ContextWithBearer(context.Background(), "token-abc")
	receipt, err := svc.Submit(ctx, "session-1")
	if err != nil {
		t.Fatalf("expected success despite clear failure, got %v", err)
	}
	if receipt.OrderID != submitter.orderID {
		t.Fatalf("unexpected order id %s", receipt.OrderID)
	}
}
