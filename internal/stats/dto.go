package stats

// CategoryCount is one row of the per-category histogram.
type CategoryCount struct {
	Category        string `json:"category"`
	ProductQuantity int64  `json:"product_quantity"`
}

// StatsDTO is the dashboard snapshot of catalog-wide metrics.
type StatsDTO struct {
	ProductsCount      int64           `json:"products_count"`
	CollectionsCount   int64           `json:"collections_count"`
	CategoriesCount    int64           `json:"categories_count"`
	ProductsByCategory []CategoryCount `json:"products_by_category"`
}
