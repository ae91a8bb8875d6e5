package models

import "time"

// Product represents a catalogue item. Price is stored in integer minor
// currency units; floating point never touches monetary arithmetic.
type Product struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	PriceCents int64     `gorm:"column:price_cents;not null" json:"price_cents"`
	Category   *string   `gorm:"column:category" json:"category,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
