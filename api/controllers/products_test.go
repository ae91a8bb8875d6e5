package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	productsvc "github.com/Taqieddin-qattousa/storefront-backend/internal/products"
	pkgerrors "github.com/Taqieddin-qattousa/storefront-backend/pkg/errors"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/types"
)

type stubProductService struct {
	product      *productsvc.ProductDTO
	list         []productsvc.ProductDTO
	popular      []productsvc.PopularProductDTO
	err          error
	lastCategory string
}

func (s *stubProductService) Create(ctx context.Context, input productsvc.CreateProductDTO) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Get(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) List(ctx context.Context, category string) ([]productsvc.ProductDTO, error) {
	s.lastCategory = category
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubProductService) Update(ctx context.Context, id int64, input productsvc.UpdateProductDTO) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Delete(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Popular(ctx context.Context) ([]productsvc.PopularProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.popular, nil
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Keyboard","price":-1}`))
	rec := httptest.NewRecorder()
	CreateProduct(&stubProductService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}
}

func TestCreateProductAcceptsZeroPrice(t *testing.T) {
	stub := &stubProductService{product: &productsvc.ProductDTO{ID: 1, Name: "Freebie"}}
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Freebie","price":0}`))
	rec := httptest.NewRecorder()
	CreateProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for zero price, got %d", rec.Code)
	}
}

func TestListProductsPassesCategoryFilter(t *testing.T) {
	stub := &stubProductService{list: []productsvc.ProductDTO{}}
	req := httptest.NewRequest(http.MethodGet, "/products?category=electronics", nil)
	rec := httptest.NewRecorder()
	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastCategory != "electronics" {
		t.Fatalf("expected category forwarded, got %q", stub.lastCategory)
	}
}

func TestGetProductMapsNotFound(t *testing.T) {
	stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product 5 not found")}
	req := httptest.NewRequest(http.MethodGet, "/products/5", nil)
	req = withPathID(req, "id", "5")
	rec := httptest.NewRecorder()
	GetProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateProductAcceptsPartialBody(t *testing.T) {
	stub := &stubProductService{product: &productsvc.ProductDTO{ID: 5, Name: "Keyboard", Price: 5999}}
	req := httptest.NewRequest(http.MethodPut, "/products/5", strings.NewReader(`{"price":5999}`))
	req = withPathID(req, "id", "5")
	rec := httptest.NewRecorder()
	UpdateProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["price"].(float64) != 5999 {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestPopularProductsReturnsRanking(t *testing.T) {
	stub := &stubProductService{popular: []productsvc.PopularProductDTO{
		{ProductID: 2, Name: "B", TotalQuantity: 7},
	}}
	req := httptest.NewRequest(http.MethodGet, "/products/popular", nil)
	rec := httptest.NewRecorder()
	PopularProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	rows := envelope.Data.([]any)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %v", rows)
	}
}
