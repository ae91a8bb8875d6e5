package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/enums"
	pkgerrors "github.com/Taqieddin-qattousa/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// recentLimit caps the recent-purchases listing.
const recentLimit = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// productChecker verifies a product exists before it joins an order.
// internal/products.Repository satisfies it.
type productChecker interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// AddProductInput carries the fields required to append a line item.
type AddProductInput struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

// Service defines order lifecycle operations.
type Service interface {
	Open(ctx context.Context, userID int64) (*OrderDTO, error)
	Current(ctx context.Context, userID int64) (*OrderWithItemsDTO, error)
	Completed(ctx context.Context, userID int64) ([]OrderDTO, error)
	AddProduct(ctx context.Context, input AddProductInput) (*OrderProductDTO, error)
	Complete(ctx context.Context, orderID int64) (*OrderDTO, error)
	RecentPurchases(ctx context.Context, userID int64) ([]RecentPurchaseDTO, error)
}

// ServiceParams collects the dependencies required to build the service.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Products productChecker
}

type service struct {
	repo     Repository
	tx       txRunner
	products productChecker
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product checker required")
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		products: params.Products,
	}, nil
}

// Open creates a new active order for the user. The check-then-insert
// runs inside one transaction; the partial unique index on
// orders(user_id) WHERE status = 'active' backs it at the engine level.
func (s *service) Open(ctx context.Context, userID int64) (*OrderDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		_, err := repo.FindActiveByUser(ctx, userID)
		if err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "user already has an active order")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check active order")
		}

		created, err = repo.Create(ctx, userID)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_orders_one_active_per_user") {
				return pkgerrors.New(pkgerrors.CodeConflict, "user already has an active order")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

// Current returns the user's active order with its line items, or nil
// when the user has no open order.
func (s *service) Current(ctx context.Context, userID int64) (*OrderWithItemsDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	order, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active order")
	}

	items, err := s.repo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}

	return &OrderWithItemsDTO{
		OrderDTO: *FromModel(order),
		Items:    itemsFromModels(items),
	}, nil
}

func (s *service) Completed(ctx context.Context, userID int64) ([]OrderDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	list, err := s.repo.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list completed orders")
	}
	return FromModels(list), nil
}

// AddProduct appends a line item to an open order. The status check and
// insert share one transaction so the insert never runs after a failed
// check; the read takes no row lock, so a Complete committing in
// between can still leave the item on a freshly completed order.
func (s *service) AddProduct(ctx context.Context, input AddProductInput) (*OrderProductDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.OrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product "+strconv.FormatInt(input.ProductID, 10)+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var item *models.OrderProduct
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order "+strconv.FormatInt(input.OrderID, 10)+" not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.OrderStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not open for changes")
		}

		item, err = repo.AddItem(ctx, &models.OrderProduct{
			OrderID:   input.OrderID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add order item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := itemFromModel(item)
	return &dto, nil
}

// Complete moves the order to its terminal state. Completing an already
// complete order returns the row unchanged.
func (s *service) Complete(ctx context.Context, orderID int64) (*OrderDTO, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var completed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order "+strconv.FormatInt(orderID, 10)+" not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.OrderStatusComplete {
			completed = order
			return nil
		}

		if err := repo.UpdateStatus(ctx, orderID, enums.OrderStatusComplete); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete order")
		}
		order.Status = enums.OrderStatusComplete
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(completed), nil
}

func (s *service) RecentPurchases(ctx context.Context, userID int64) ([]RecentPurchaseDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.RecentPurchases(ctx, userID, recentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent purchases")
	}
	return rows, nil
}
