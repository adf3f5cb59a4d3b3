package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/artelaco/catalog-backend/pkg/db/models"
	"github.com/artelaco/catalog-backend/pkg/pagination"
	"github.com/artelaco/catalog-backend/pkg/types"
)

// ProductDTO is the API-facing shape of a product.
type ProductDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Color        []string        `json:"color"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Model        string          `json:"model"`
	Disponible   bool            `json:"disponible"`
	CollectionID int64           `json:"collection_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name         string
	Price        decimal.Decimal
	Color        []string
	Category     string
	Size         string
	Description  string
	Image        string
	Model        string
	Disponible   *bool
	CollectionID int64
}

// UpdateProductInput holds optional mutation values for a product.
// Reparenting is not exposed, so the collection reference is absent.
type UpdateProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Color       *[]string
	Category    *string
	Size        *string
	Description *string
	Image       *string
	Model       *string
	Disponible  *bool
}

// ListProductsInput captures list filters and cursor pagination.
type ListProductsInput struct {
	CollectionID *int64
	Pagination   pagination.Params
}

// ProductListResult is one page of products plus the cursor for the next one.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// ToProductDTO maps the persistence model to its API shape.
func ToProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	color := make([]string, len(product.Color))
	copy(color, product.Color)
	return &ProductDTO{
		ID:           product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Color:        color,
		Category:     product.Category,
		Size:         product.Size,
		Description:  product.Description,
		Image:        product.Image,
		Model:        product.Model,
		Disponible:   product.Disponible,
		CollectionID: product.CollectionID,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

func colorListFrom(values []string) types.ColorList {
	out := make(types.ColorList, len(values))
	copy(out, values)
	return out
}
