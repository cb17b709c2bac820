package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

func TestComputeTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(nil, nil, enums.UrgencyNormal)
	if !totals.Subtotal.IsZero() || !totals.DeliveryFee.IsZero() || !totals.Total.IsZero() || totals.ItemCount != 0 {
		t.Fatalf("expected all-zero totals, got %+v", totals)
	}
}

func TestComputeTotalsSumsLines(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(4), Quantity: 3},
		{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2},
	}
	supplier := &Supplier{ID: uuid.New(), DeliveryFee: decimal.NewFromInt(5)}

	totals := ComputeTotals(items, supplier, enums.UrgencyNormal)

	if !totals.Subtotal.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("expected subtotal 17, got %s", totals.Subtotal)
	}
	if !totals.DeliveryFee.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected delivery fee 5, got %s", totals.DeliveryFee)
	}
	if !totals.Total.Equal(decimal.NewFromInt(22)) {
		t.Fatalf("expected total 22, got %s", totals.Total)
	}
	if totals.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", totals.ItemCount)
	}
}

func TestComputeTotalsUrgentSurcharge(t *testing.T) {
	t.Parallel()

	items := []Item{{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10), Quantity: 1}}
	supplier := &Supplier{ID: uuid.New(), DeliveryFee: decimal.NewFromInt(5)}

	totals := ComputeTotals(items, supplier, enums.UrgencyUrgent)

	if !totals.DeliveryFee.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected base fee plus surcharge 15, got %s", totals.DeliveryFee)
	}
	if !totals.Total.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected total 25, got %s", totals.Total)
	}
}

func TestComputeTotalsUrgentWithoutSupplier(t *testing.T) {
	t.Parallel()

	items := []Item{{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10), Quantity: 1}}

	totals := ComputeTotals(items, nil, enums.UrgencyUrgent)

	// No supplier means no fee at all, surcharge included.
	if !totals.DeliveryFee.IsZero() {
		t.Fatalf("expected zero fee without supplier, got %s", totals.DeliveryFee)
	}
}
