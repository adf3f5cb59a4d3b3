package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artelaco/catalog-backend/api/responses"
	"github.com/artelaco/catalog-backend/api/validators"
	collectionsvc "github.com/artelaco/catalog-backend/internal/collections"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/logger"
)

type createCollectionRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Quantity *int   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type updateCollectionRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

func CreateCollection(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var payload createCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collection, err := svc.Create(r.Context(), collectionsvc.CreateCollectionInput{
			Name:     payload.Name,
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, collection)
	}
}

func ListCollections(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		collections, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, collections)
	}
}

func GetCollection(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "collectionID"), "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCollectionID(ctx, id)
		}

		collection, err := svc.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, collection)
	}
}

func ListCollectionProducts(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "collectionID"), "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCollectionID(ctx, id)
		}

		products, err := svc.ListProducts(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

func UpdateCollection(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "collectionID"), "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCollectionID(ctx, id)
		}

		collection, err := svc.Update(ctx, id, collectionsvc.UpdateCollectionInput{
			Name:     payload.Name,
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, collection)
	}
}

func DeleteCollection(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "collectionID"), "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCollectionID(ctx, id)
		}

		collection, err := svc.Delete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, collection)
	}
}
