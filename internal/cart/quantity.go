package cart

import (
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
)

// clampNewQuantity validates a fresh add. Requests below the minimum are
// floored to it silently (intent is "add some"); requests over stock are
// rejected with the available quantity so callers can report it.
func clampNewQuantity(requested, minimum, stock int) (int, error) {
	if requested < minimum {
		requested = minimum
	}
	if requested > stock {
		return 0, insufficientStockError(requested, stock)
	}
	return requested, nil
}

// validateQuantityUpdate checks an explicit quantity change on an existing
// line. Unlike a fresh add it never clamps: below-minimum updates are
// rejected so the caller can decide whether removal was meant instead.
func validateQuantityUpdate(requested, minimum, stock int) error {
	if requested < minimum {
		return pkgerrors.New(pkgerrors.CodeBelowMinimum, "quantity below minimum order quantity").
			WithDetails(map[string]any{
				"requested_quantity": requested,
				"minimum_quantity":   minimum,
			})
	}
	if requested > stock {
		return insufficientStockError(requested, stock)
	}
	return nil
}

func insufficientStockError(requested, stock int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "requested quantity exceeds available stock").
		WithDetails(map[string]any{
			"requested_quantity": requested,
			"available_stock":    stock,
		})
}
