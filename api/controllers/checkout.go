package controllers

import (
	"net/http"

	"github.com/harvestlink-app/harvestlink-backend/api/middleware"
	"github.com/harvestlink-app/harvestlink-backend/api/responses"
	"github.com/harvestlink-app/harvestlink-backend/internal/checkout"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

// CheckoutSubmit finalizes the cart into an order and returns the receipt.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "checkout unavailable, order service not configured"))
			return
		}

		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		receipt, err := svc.Submit(r.Context(), sessionKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
