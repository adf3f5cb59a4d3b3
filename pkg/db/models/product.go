package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/artelaco/catalog-backend/pkg/types"
)

// Product is a sellable item. Every product belongs to exactly one collection
// for its entire lifetime; reparenting is not exposed.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Color       types.ColorList `gorm:"column:color;type:jsonb;not null;default:'[]'" json:"color"`
	Category    string          `gorm:"column:category;not null" json:"category"`
	Size        string          `gorm:"column:size;not null" json:"size"`
	Description string          `gorm:"column:description;not null" json:"description"`
	Image       string          `gorm:"column:image;not null" json:"image"`
	Model       string          `gorm:"column:model;not null" json:"model"`
	Disponible  bool            `gorm:"column:disponible;not null;default:true" json:"disponible"`

	CollectionID int64 `gorm:"column:collection_id;not null" json:"collection_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
