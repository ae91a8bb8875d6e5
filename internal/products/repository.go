package products

import (
	"context"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the products table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id int64) (*models.Product, error)
	TopByQuantity(ctx context.Context, limit int) ([]PopularProductDTO, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListByCategory filters on exact, case-sensitive category equality.
func (r *repository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies a partial column update and returns the refreshed row.
// gorm.ErrRecordNotFound is returned when the id matches nothing.
func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return product, nil
	}
	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the product row and returns the deleted record.
// Historical order_products rows keep referencing the removed id.
func (r *repository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// TopByQuantity ranks products by total ordered quantity across all
// orders regardless of status. Ties resolve by product id so output is
// stable.
func (r *repository) TopByQuantity(ctx context.Context, limit int) ([]PopularProductDTO, error) {
	var rows []PopularProductDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name AS name,
		       p.price_cents AS price,
		       p.category AS category,
		       SUM(op.quantity) AS total_quantity
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		GROUP BY p.id, p.name, p.price_cents, p.category
		ORDER BY total_quantity DESC, p.id ASC
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
