package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/artelaco/catalog-backend/api/responses"
	"github.com/artelaco/catalog-backend/pkg/config"
	"github.com/artelaco/catalog-backend/pkg/db"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing dependency. A nil pinger is skipped so the
// probe stays accurate when an optional dependency is not configured.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		if dbP != nil {
			err = multierr.Append(err, dbP.Ping(ctx))
		}
		if redisP != nil {
			err = multierr.Append(err, redisP.Ping(ctx))
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
