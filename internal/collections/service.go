package collections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artelaco/catalog-backend/internal/products"
	"github.com/artelaco/catalog-backend/pkg/db"
	"github.com/artelaco/catalog-backend/pkg/db/models"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"gorm.io/gorm"
)

const nameUniqueConstraint = "collections_name_key"

type repository interface {
	Create(ctx context.Context, collection *models.Collection) error
	FindAll(ctx context.Context) ([]models.Collection, error)
	FindByID(ctx context.Context, id int64) (*models.Collection, error)
	FindProducts(ctx context.Context, collectionID int64) ([]models.Product, error)
	Update(ctx context.Context, collection *models.Collection) error
	DeleteCascade(ctx context.Context, id int64) error
}

// Service exposes collection management operations.
type Service interface {
	Create(ctx context.Context, input CreateCollectionInput) (*CollectionDTO, error)
	List(ctx context.Context) ([]CollectionDTO, error)
	GetByID(ctx context.Context, id int64) (*CollectionDTO, error)
	ListProducts(ctx context.Context, id int64) ([]products.ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateCollectionInput) (*CollectionDTO, error)
	Delete(ctx context.Context, id int64) (*CollectionDTO, error)
}

type service struct {
	repo repository
}

// NewService builds a collection service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("collection repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCollectionInput) (*CollectionDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	quantity := 0
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		quantity = *input.Quantity
	}

	collection := &models.Collection{Name: name, Quantity: quantity}
	if err := s.repo.Create(ctx, collection); err != nil {
		if db.IsUniqueViolation(err, nameUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "collection name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create collection")
	}
	return toCollectionDTO(collection), nil
}

func (s *service) List(ctx context.Context) ([]CollectionDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collections")
	}
	dtos := make([]CollectionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toCollectionDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*CollectionDTO, error) {
	collection, err := s.loadCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCollectionDTO(collection), nil
}

// ListProducts checks the collection's existence explicitly so that an empty
// collection yields an empty slice rather than a not-found result.
func (s *service) ListProducts(ctx context.Context, id int64) ([]products.ProductDTO, error) {
	if _, err := s.loadCollection(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindProducts(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collection products")
	}
	dtos := make([]products.ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *products.ToProductDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateCollectionInput) (*CollectionDTO, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	collection, err := s.loadCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdateToCollection(collection, input)
	if err := s.repo.Update(ctx, collection); err != nil {
		if db.IsUniqueViolation(err, nameUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "collection name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update collection")
	}
	return toCollectionDTO(collection), nil
}

// Delete returns the pre-delete snapshot of the collection. The cascade to
// owned products happens inside a single repository transaction.
func (s *service) Delete(ctx context.Context, id int64) (*CollectionDTO, error) {
	collection, err := s.loadCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete collection")
	}
	return toCollectionDTO(collection), nil
}

func (s *service) loadCollection(ctx context.Context, id int64) (*models.Collection, error) {
	collection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load collection")
	}
	return collection, nil
}

func applyUpdateToCollection(collection *models.Collection, input UpdateCollectionInput) {
	if input.Name != nil {
		collection.Name = strings.TrimSpace(*input.Name)
	}
	if input.Quantity != nil {
		collection.Quantity = *input.Quantity
	}
}
