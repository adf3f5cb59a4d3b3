package collections

import (
	"context"

	"github.com/artelaco/catalog-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles collection persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to collection operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new collection row.
func (r *Repository) Create(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

// FindAll returns every collection in store order.
func (r *Repository) FindAll(ctx context.Context) ([]models.Collection, error) {
	var rows []models.Collection
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a collection by its ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// FindProducts returns all products owned by the given collection.
func (r *Repository) FindProducts(ctx context.Context, collectionID int64) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided collection.
func (r *Repository) Update(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

// DeleteCascade removes the collection and all of its products in a single
// transaction. The schema also declares ON DELETE CASCADE; the explicit
// delete keeps the guarantee independent of the storage engine.
func (r *Repository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Collection{}, id).Error
	})
}
