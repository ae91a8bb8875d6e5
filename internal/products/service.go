package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
	pkgerrors "github.com/Taqieddin-qattousa/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// popularLimit caps the popular-products ranking.
const popularLimit = 5

// Service defines catalogue operations.
type Service interface {
	Create(ctx context.Context, input CreateProductDTO) (*ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	List(ctx context.Context, category string) ([]ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateProductDTO) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) (*ProductDTO, error)
	Popular(ctx context.Context) ([]PopularProductDTO, error)
}

// ServiceParams collects the dependencies required to build the service.
type ServiceParams struct {
	Repo Repository
}

type service struct {
	repo Repository
}

// NewService builds a products service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductDTO) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	product, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product "+strconv.FormatInt(id, 10)+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

// List returns the full catalogue, or only the products in category when
// one is supplied.
func (s *service) List(ctx context.Context, category string) ([]ProductDTO, error) {
	var (
		rows []ProductDTO
		err  error
	)
	if category != "" {
		var filtered []models.Product
		filtered, err = s.repo.ListByCategory(ctx, category)
		rows = FromModels(filtered)
	} else {
		var all []models.Product
		all, err = s.repo.List(ctx)
		rows = FromModels(all)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductDTO) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
	}
	product, err := s.repo.Update(ctx, id, input.Updates())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product "+strconv.FormatInt(id, 10)+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, id int64) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product "+strconv.FormatInt(id, 10)+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return FromModel(product), nil
}

func (s *service) Popular(ctx context.Context) ([]PopularProductDTO, error) {
	rows, err := s.repo.TopByQuantity(ctx, popularLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank products")
	}
	return rows, nil
}
