package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewCart()
	supplier := testSupplier("Green Valley Farm")
	item := testItem("Tomatoes", 4, 1, 100)
	if err := c.AddItem(supplier, item, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	address := "12 Market St"
	urgent := enums.UrgencyUrgent
	c.MergeDelivery(DeliveryPatch{Address: &address, Urgency: &urgent})

	raw, err := EncodeSnapshot(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(got.Items) != 1 || got.Items[0].ProductID != item.ProductID {
		t.Fatalf("items lost in round trip: %+v", got.Items)
	}
	if !got.Items[0].UnitPrice.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("unit price lost precision: %s", got.Items[0].UnitPrice)
	}
	if got.Supplier == nil || got.Supplier.ID != supplier.ID {
		t.Fatalf("supplier lost in round trip: %+v", got.Supplier)
	}
	if got.Delivery.Address != address || got.Delivery.Urgency != enums.UrgencyUrgent {
		t.Fatalf("delivery lost in round trip: %+v", got.Delivery)
	}
}

func TestDecodeSnapshotCorruptPayload(t *testing.T) {
	t.Parallel()

	if _, err := DecodeSnapshot([]byte("{not json")); err == nil {
		t.Fatal("expected error for corrupt payload")
	}
}

func TestDecodeSnapshotVersionMismatch(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(snapshotEnvelope{Version: SnapshotVersion + 1, Cart: NewCart()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeSnapshot(raw); err == nil {
		t.Fatal("expected error for version mismatch")
	}
}

func TestDecodeSnapshotMissingCart(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(snapshotEnvelope{Version: SnapshotVersion})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeSnapshot(raw); err == nil {
		t.Fatal("expected error for missing cart payload")
	}
}

func TestDecodeSnapshotDefaultsUrgency(t *testing.T) {
	t.Parallel()

	c := &Cart{Items: []Item{{ProductID: uuid.New(), Quantity: 1}}}
	raw, err := EncodeSnapshot(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Delivery.Urgency != enums.UrgencyNormal {
		t.Fatalf("expected urgency defaulted to normal, got %q", got.Delivery.Urgency)
	}
}
