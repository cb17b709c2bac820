package cart

import (
	"encoding/json"
	"fmt"

	"github.com/harvestlink-app/harvestlink-backend/pkg/enums"
)

// SnapshotVersion tags persisted carts so schema changes can be detected on
// load. Mismatched or unversioned blobs are discarded, never migrated blindly.
const SnapshotVersion = 1

type snapshotEnvelope struct {
	Version int   `json:"version"`
	Cart    *Cart `json:"cart"`
}

// EncodeSnapshot serializes the aggregate under the current version.
func EncodeSnapshot(c *Cart) ([]byte, error) {
	return json.Marshal(snapshotEnvelope{Version: SnapshotVersion, Cart: c})
}

// DecodeSnapshot deserializes a persisted blob, failing on corrupt payloads
// and on version mismatches. Callers treat failure as "no snapshot".
func DecodeSnapshot(raw []byte) (*Cart, error) {
	var envelope snapshotEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if envelope.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d does not match %d", envelope.Version, SnapshotVersion)
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("snapshot has no cart payload")
	}
	if envelope.Cart.Delivery.Urgency == "" {
		envelope.Cart.Delivery.Urgency = enums.UrgencyNormal
	}
	return envelope.Cart, nil
}
