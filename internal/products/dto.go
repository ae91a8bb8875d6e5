package products

import (
	"time"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
)

// ProductDTO is the transport shape for catalogue items. Price is in
// integer minor currency units.
type ProductDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductDTO holds the data required by the repo to persist a new product.
type CreateProductDTO struct {
	Name     string
	Price    int64
	Category *string
}

// UpdateProductDTO carries a partial update. Nil fields keep their
// stored values.
type UpdateProductDTO struct {
	Name     *string
	Price    *int64
	Category *string
}

// PopularProductDTO is a product enriched with its ordered quantity total.
type PopularProductDTO struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Price         int64   `json:"price"`
	Category      *string `json:"category,omitempty"`
	TotalQuantity int64   `json:"total_quantity"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	return &ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.PriceCents,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromModels(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		Name:       c.Name,
		PriceCents: c.Price,
		Category:   c.Category,
	}
}

// Updates converts the partial update into column assignments, skipping
// nil fields so stored values survive.
func (u UpdateProductDTO) Updates() map[string]any {
	updates := map[string]any{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Price != nil {
		updates["price_cents"] = *u.Price
	}
	if u.Category != nil {
		updates["category"] = *u.Category
	}
	return updates
}
