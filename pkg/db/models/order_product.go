package models

import "time"

// OrderProduct is a line item joining an order to a product with a
// quantity. Rows are insert-only; adding the same product twice
// records a second row rather than merging quantities.
type OrderProduct struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID int64     `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
