package stats

import (
	"context"

	"github.com/artelaco/catalog-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository runs the read-only aggregate queries behind the dashboard
// snapshot. Each metric is an independent query; the snapshot tolerates
// slight skew under concurrent writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to the aggregate queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountProducts returns the total number of product rows.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// CountCollections returns the total number of collection rows.
func (r *Repository) CountCollections(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Collection{}).Count(&count).Error
	return count, err
}

// CountDistinctCategories returns how many distinct categories exist across
// all products.
func (r *Repository) CountDistinctCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Count(&count).Error
	return count, err
}

// GroupByCategory returns the per-category histogram ordered by product
// count descending. Equal counts order alphabetically so the result is
// deterministic across runs and storage engines.
func (r *Repository) GroupByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS product_quantity").
		Group("category").
		Order("product_quantity DESC, category ASC").
		Scan(&rows).Error
	return rows, err
}
