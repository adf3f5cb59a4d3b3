package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artelaco/catalog-backend/pkg/db"
	"github.com/artelaco/catalog-backend/pkg/db/models"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository interface {
	CollectionExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, cursor *pagination.Cursor, limit int, collectionID *int64) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// Service exposes product management operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	List(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo repository
}

// NewService constructs a product service instance.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.repo.CollectionExists(ctx, input.CollectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check collection")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeReferential, "collection does not exist").
			WithDetails(map[string]any{"collection_id": input.CollectionID})
	}

	disponible := true
	if input.Disponible != nil {
		disponible = *input.Disponible
	}

	product := &models.Product{
		Name:         strings.TrimSpace(input.Name),
		Price:        input.Price,
		Color:        colorListFrom(input.Color),
		Category:     strings.TrimSpace(input.Category),
		Size:         input.Size,
		Description:  input.Description,
		Image:        input.Image,
		Model:        input.Model,
		Disponible:   disponible,
		CollectionID: input.CollectionID,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		// The existence check above races with a concurrent collection
		// delete; the FK constraint closes that window.
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeReferential, err, "collection does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return ToProductDTO(product), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductDTO(product), nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(input.Pagination.Limit), input.CollectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := &ProductListResult{Products: make([]ProductDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		result.Products = append(result.Products, *ToProductDTO(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdateToProduct(product, input)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return ToProductDTO(product), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func validateCreateInput(input CreateProductInput) error {
	missing := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		missing["name"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		missing["category"] = "is required"
	}
	if strings.TrimSpace(input.Size) == "" {
		missing["size"] = "is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		missing["description"] = "is required"
	}
	if strings.TrimSpace(input.Image) == "" {
		missing["image"] = "is required"
	}
	if strings.TrimSpace(input.Model) == "" {
		missing["model"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(missing)
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.CollectionID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "collection_id is required")
	}
	return nil
}

func validateUpdateInput(input UpdateProductInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Color != nil {
		product.Color = colorListFrom(*input.Color)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Size != nil {
		product.Size = *input.Size
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Model != nil {
		product.Model = *input.Model
	}
	if input.Disponible != nil {
		product.Disponible = *input.Disponible
	}
}
