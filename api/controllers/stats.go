package controllers

import (
	"net/http"

	"github.com/artelaco/catalog-backend/api/responses"
	statsvc "github.com/artelaco/catalog-backend/internal/stats"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/logger"
)

func GetStats(svc statsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		snapshot, err := svc.GetStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
