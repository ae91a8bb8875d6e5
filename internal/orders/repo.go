package orders

import (
	"context"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, userID int64) (*models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindActiveByUser(ctx context.Context, userID int64) (*models.Order, error)
	ListCompletedByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]models.OrderProduct, error)
	AddItem(ctx context.Context, item *models.OrderProduct) (*models.OrderProduct, error)
	UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) error
	RecentPurchases(ctx context.Context, userID int64, limit int) ([]RecentPurchaseDTO, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, userID int64) (*models.Order, error) {
	order := &models.Order{
		UserID: userID,
		Status: enums.OrderStatusActive,
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindActiveByUser returns the user's single open order.
// gorm.ErrRecordNotFound signals there is none.
func (r *repository) FindActiveByUser(ctx context.Context, userID int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.OrderStatusActive).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListCompletedByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.OrderStatusComplete).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]models.OrderProduct, error) {
	var items []models.OrderProduct
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) AddItem(ctx context.Context, item *models.OrderProduct) (*models.OrderProduct, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// RecentPurchases returns line items from the user's completed orders,
// newest order first. Products deleted after purchase surface with null
// catalogue fields.
func (r *repository) RecentPurchases(ctx context.Context, userID int64, limit int) ([]RecentPurchaseDTO, error) {
	var rows []RecentPurchaseDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT op.order_id AS order_id,
		       op.product_id AS product_id,
		       op.quantity AS quantity,
		       p.name AS name,
		       p.price_cents AS price,
		       p.category AS category
		FROM order_products op
		JOIN orders o ON o.id = op.order_id
		LEFT JOIN products p ON p.id = op.product_id
		WHERE o.user_id = ? AND o.status = ?
		ORDER BY o.id DESC, op.id DESC
		LIMIT ?
	`, userID, enums.OrderStatusComplete, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
