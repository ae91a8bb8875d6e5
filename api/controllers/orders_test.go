package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ordersvc "github.com/Taqieddin-qattousa/storefront-backend/internal/orders"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/enums"
	pkgerrors "github.com/Taqieddin-qattousa/storefront-backend/pkg/errors"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/types"
)

type stubOrderService struct {
	order     *ordersvc.OrderDTO
	current   *ordersvc.OrderWithItemsDTO
	completed []ordersvc.OrderDTO
	item      *ordersvc.OrderProductDTO
	recent    []ordersvc.RecentPurchaseDTO
	err       error
	lastAdd   ordersvc.AddProductInput
}

func (s *stubOrderService) Open(ctx context.Context, userID int64) (*ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) Current(ctx context.Context, userID int64) (*ordersvc.OrderWithItemsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.current, nil
}

func (s *stubOrderService) Completed(ctx context.Context, userID int64) ([]ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.completed, nil
}

func (s *stubOrderService) AddProduct(ctx context.Context, input ordersvc.AddProductInput) (*ordersvc.OrderProductDTO, error) {
	s.lastAdd = input
	if s.err != nil {
		return nil, s.err
	}
	return s.item, nil
}

func (s *stubOrderService) Complete(ctx context.Context, orderID int64) (*ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) RecentPurchases(ctx context.Context, userID int64) ([]ordersvc.RecentPurchaseDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recent, nil
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	stub := &stubOrderService{order: &ordersvc.OrderDTO{ID: 1, UserID: 7, Status: enums.OrderStatusActive}}
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"user_id":7}`))
	rec := httptest.NewRecorder()
	CreateOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCreateOrderMapsConflict(t *testing.T) {
	stub := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeConflict, "user already has an active order")}
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"user_id":7}`))
	rec := httptest.NewRecorder()
	CreateOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCurrentOrderWritesNullWhenNoneActive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/current/7", nil)
	req = withPathID(req, "userId", "7")
	rec := httptest.NewRecorder()
	CurrentOrder(&stubOrderService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data != nil {
		t.Fatalf("expected null data, got %v", envelope.Data)
	}
}

func TestAddOrderProductRejectsZeroQuantity(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders/3/products", strings.NewReader(`{"product_id":2,"quantity":0}`))
	req = withPathID(req, "id", "3")
	rec := httptest.NewRecorder()
	AddOrderProduct(&stubOrderService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddOrderProductMapsStateConflict(t *testing.T) {
	stub := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "order is not open for changes")}
	req := httptest.NewRequest(http.MethodPost, "/orders/3/products", strings.NewReader(`{"product_id":2,"quantity":1}`))
	req = withPathID(req, "id", "3")
	rec := httptest.NewRecorder()
	AddOrderProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAddOrderProductForwardsPathOrderID(t *testing.T) {
	stub := &stubOrderService{item: &ordersvc.OrderProductDTO{ID: 1, OrderID: 3, ProductID: 2, Quantity: 4}}
	req := httptest.NewRequest(http.MethodPost, "/orders/3/products", strings.NewReader(`{"product_id":2,"quantity":4}`))
	req = withPathID(req, "id", "3")
	rec := httptest.NewRecorder()
	AddOrderProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.lastAdd.OrderID != 3 || stub.lastAdd.ProductID != 2 || stub.lastAdd.Quantity != 4 {
		t.Fatalf("unexpected input forwarded: %+v", stub.lastAdd)
	}
}

func TestCompleteOrderRejectsMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders/abc/complete", nil)
	req = withPathID(req, "id", "abc")
	rec := httptest.NewRecorder()
	CompleteOrder(&stubOrderService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCompleteOrderReturnsRow(t *testing.T) {
	stub := &stubOrderService{order: &ordersvc.OrderDTO{ID: 3, UserID: 7, Status: enums.OrderStatusComplete}}
	req := httptest.NewRequest(http.MethodPost, "/orders/3/complete", nil)
	req = withPathID(req, "id", "3")
	rec := httptest.NewRecorder()
	CompleteOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["status"].(string) != string(enums.OrderStatusComplete) {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestRecentPurchasesReturnsRows(t *testing.T) {
	name := "Keyboard"
	price := int64(5999)
	stub := &stubOrderService{recent: []ordersvc.RecentPurchaseDTO{
		{OrderID: 3, ProductID: 2, Quantity: 1, Name: &name, Price: &price},
	}}
	req := httptest.NewRequest(http.MethodGet, "/orders/recent/7", nil)
	req = withPathID(req, "userId", "7")
	rec := httptest.NewRecorder()
	RecentPurchases(stub, testLogger()).ServeHTTP(rec, req)

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
