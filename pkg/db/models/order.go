package models

import (
	"time"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/enums"
)

// Order groups the products a user is buying. A user may have at most
// one order in status active at any time; completed orders accumulate.
type Order struct {
	ID        int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64             `gorm:"column:user_id;not null;index" json:"user_id"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:active" json:"status"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
