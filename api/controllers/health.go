package controllers

import (
	"context"
	"net/http"

	"github.com/harvestlink-app/harvestlink-backend/api/responses"
	"github.com/harvestlink-app/harvestlink-backend/pkg/config"
	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

// Pinger is the health-check surface shared by the db and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HarvestLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired backend; nil entries are skipped so the same
// handler serves both sqlite-only and redis-backed deployments.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HarvestLink-Env", cfg.App.Env)
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
