package models

import "time"

// Collection is a named grouping of products. Names are unique store-wide.
// Quantity is caller-supplied and intentionally not derived from the number
// of owned products.
type Collection struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;not null;uniqueIndex:collections_name_key" json:"name"`
	Quantity int    `gorm:"column:quantity;not null;default:0" json:"quantity"`

	Products []Product `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
