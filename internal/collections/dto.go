package collections

import (
	"time"

	"github.com/artelaco/catalog-backend/pkg/db/models"
)

// CollectionDTO is the API-facing shape of a collection.
type CollectionDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCollectionInput holds the validated payload to create a collection.
type CreateCollectionInput struct {
	Name     string
	Quantity *int
}

// UpdateCollectionInput holds optional mutation values for a collection.
// A nil field means "leave untouched", which keeps partial updates distinct
// from explicit zero values.
type UpdateCollectionInput struct {
	Name     *string
	Quantity *int
}

func toCollectionDTO(collection *models.Collection) *CollectionDTO {
	if collection == nil {
		return nil
	}
	return &CollectionDTO{
		ID:        collection.ID,
		Name:      collection.Name,
		Quantity:  collection.Quantity,
		CreatedAt: collection.CreatedAt,
		UpdatedAt: collection.UpdatedAt,
	}
}
