package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/artelaco/catalog-backend/api/responses"
	"github.com/artelaco/catalog-backend/api/validators"
	productsvc "github.com/artelaco/catalog-backend/internal/products"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/logger"
	"github.com/artelaco/catalog-backend/pkg/pagination"
)

type createProductRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Price        string   `json:"price" validate:"required"`
	Color        []string `json:"color,omitempty"`
	Category     string   `json:"category" validate:"required,min=1,max=120"`
	Size         string   `json:"size" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Image        string   `json:"image" validate:"required,url"`
	Model        string   `json:"model" validate:"required"`
	Disponible   *bool    `json:"disponible,omitempty"`
	CollectionID int64    `json:"collection_id" validate:"required,gte=1"`
}

type updateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Price       *string   `json:"price,omitempty"`
	Color       *[]string `json:"color,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,min=1,max=120"`
	Size        *string   `json:"size,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty" validate:"omitempty,url"`
	Model       *string   `json:"model,omitempty"`
	Disponible  *bool     `json:"disponible,omitempty"`
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price").WithDetails(map[string]any{"field": "price"})
	}
	return price, nil
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := parsePrice(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateProductInput{
			Name:         payload.Name,
			Price:        price,
			Color:        payload.Color,
			Category:     payload.Category,
			Size:         payload.Size,
			Description:  payload.Description,
			Image:        payload.Image,
			Model:        payload.Model,
			Disponible:   payload.Disponible,
			CollectionID: payload.CollectionID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collectionID, err := validators.ParseQueryInt64(r, "collection_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), productsvc.ListProductsInput{
			CollectionID: collectionID,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}

		product, err := svc.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:        payload.Name,
			Color:       payload.Color,
			Category:    payload.Category,
			Size:        payload.Size,
			Description: payload.Description,
			Image:       payload.Image,
			Model:       payload.Model,
			Disponible:  payload.Disponible,
		}
		if payload.Price != nil {
			price, err := parsePrice(*payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Price = &price
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}

		product, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": true, "id": id})
	}
}
