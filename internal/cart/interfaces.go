package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

// SnapshotRepository persists the full aggregate per session namespace.
// Load never fails on corrupt or version-mismatched snapshots: those are
// discarded in favor of an empty cart. Errors are reserved for the backing
// store being unreachable.
type SnapshotRepository interface {
	Load(ctx context.Context, sessionKey string) (*Cart, error)
	Save(ctx context.Context, sessionKey string, cart *Cart) error
	Delete(ctx context.Context, sessionKey string) error
}

// MirrorEvent describes one local mutation for the best-effort mirror to the
// remote order service.
type MirrorEvent struct {
	Type       enums.CartEventType
	SessionKey string
	Credential string
	ProductID  uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	SupplierID uuid.UUID
}

// Mirror accepts mutation events after the local commit. Implementations must
// never block the caller and must swallow delivery failures.
type Mirror interface {
	Enqueue(event MirrorEvent)
}

// NopMirror drops every event, used when mirroring is not configured.
type NopMirror struct{}

func (NopMirror) Enqueue(MirrorEvent) {}
