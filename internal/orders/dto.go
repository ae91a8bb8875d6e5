package orders

import (
	"time"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/enums"
)

// OrderDTO is the transport shape for an order.
type OrderDTO struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// OrderProductDTO is the transport shape for a single line item.
type OrderProductDTO struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderWithItemsDTO bundles an order with its line items.
type OrderWithItemsDTO struct {
	OrderDTO
	Items []OrderProductDTO `json:"items"`
}

// RecentPurchaseDTO is a completed-order line item enriched with the
// product's catalogue fields. The product fields are pointers because a
// product can be deleted after it was purchased.
type RecentPurchaseDTO struct {
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      *string `json:"name"`
	Price     *int64  `json:"price"`
	Category  *string `json:"category"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	return &OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromModels(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func itemFromModel(op *models.OrderProduct) OrderProductDTO {
	return OrderProductDTO{
		ID:        op.ID,
		OrderID:   op.OrderID,
		ProductID: op.ProductID,
		Quantity:  op.Quantity,
	}
}

func itemsFromModels(list []models.OrderProduct) []OrderProductDTO {
	out := make([]OrderProductDTO, 0, len(list))
	for i := range list {
		out = append(out, itemFromModel(&list[i]))
	}
	return out
}
