package stats

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/artelaco/catalog-backend/pkg/db/models"
	"github.com/artelaco/catalog-backend/pkg/types"
)

func setupStatsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	collectionsDDL := `
CREATE TABLE IF NOT EXISTS collections (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT collections_name_key UNIQUE (name)
);`
	productsDDL := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  color TEXT NOT NULL DEFAULT '[]',
  category TEXT NOT NULL,
  size TEXT NOT NULL,
  description TEXT NOT NULL,
  image TEXT NOT NULL,
  model TEXT NOT NULL,
  disponible INTEGER NOT NULL DEFAULT 1,
  collection_id INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(collectionsDDL).Error)
	require.NoError(t, conn.Exec(productsDDL).Error)
	return conn
}

func seedCatalog(t *testing.T, conn *gorm.DB, byCategory map[string]int) {
	t.Helper()

	collection := &models.Collection{Name: "Mixed", Quantity: 1}
	require.NoError(t, conn.Create(collection).Error)

	i := 0
	for category, count := range byCategory {
		for n := 0; n < count; n++ {
			i++
			product := &models.Product{
				Name:         fmt.Sprintf("%s-%d", category, n),
				Price:        decimal.RequireFromString("9.90"),
				Color:        types.ColorList{"black"},
				Category:     category,
				Size:         "M",
				Description:  "seed",
				Image:        fmt.Sprintf("https://cdn.example.com/%d.png", i),
				Model:        fmt.Sprintf("M-%d", i),
				Disponible:   true,
				CollectionID: collection.ID,
			}
			require.NoError(t, conn.Create(product).Error)
		}
	}
}

func TestRepositoryCountsEmptyStore(t *testing.T) {
	conn := setupStatsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	products, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, products)

	collections, err := repo.CountCollections(ctx)
	require.NoError(t, err)
	assert.Zero(t, collections)

	categories, err := repo.CountDistinctCategories(ctx)
	require.NoError(t, err)
	assert.Zero(t, categories)

	rows, err := repo.GroupByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryCounts(t *testing.T) {
	conn := setupStatsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedCatalog(t, conn, map[string]int{"A": 3, "B": 5, "C": 2})

	products, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, products)

	collections, err := repo.CountCollections(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, collections)

	categories, err := repo.CountDistinctCategories(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, categories)
}

func TestRepositoryGroupByCategoryDescending(t *testing.T) {
	conn := setupStatsTestDB(t)
	repo := NewRepository(conn)

	seedCatalog(t, conn, map[string]int{"A": 3, "B": 5, "C": 2})

	rows, err := repo.GroupByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, CategoryCount{Category: "B", ProductQuantity: 5}, rows[0])
	assert.Equal(t, CategoryCount{Category: "A", ProductQuantity: 3}, rows[1])
	assert.Equal(t, CategoryCount{Category: "C", ProductQuantity: 2}, rows[2])
}

func TestRepositoryGroupByCategoryTieBreak(t *testing.T) {
	conn := setupStatsTestDB(t)
	repo := NewRepository(conn)

	seedCatalog(t, conn, map[string]int{"zeta": 2, "alpha": 2, "mid": 3})

	rows, err := repo.GroupByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "mid", rows[0].Category)
	assert.Equal(t, "alpha", rows[1].Category)
	assert.Equal(t, "zeta", rows[2].Category)
}
