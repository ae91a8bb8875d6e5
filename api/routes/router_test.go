package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ordersvc "github.com/Taqieddin-qattousa/storefront-backend/internal/orders"
	productsvc "github.com/Taqieddin-qattousa/storefront-backend/internal/products"
	usersvc "github.com/Taqieddin-qattousa/storefront-backend/internal/users"
	pkgauth "github.com/Taqieddin-qattousa/storefront-backend/pkg/auth"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/config"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/enums"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/logger"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubUserService struct{}

func (stubUserService) Register(ctx context.Context, input usersvc.RegisterInput) (*usersvc.RegisteredUserDTO, error) {
	return &usersvc.RegisteredUserDTO{
		User:  usersvc.UserDTO{ID: 1, FirstName: input.FirstName, LastName: input.LastName},
		Token: "token",
	}, nil
}

func (stubUserService) Get(ctx context.Context, id int64) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (stubUserService) List(ctx context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}

func (stubUserService) Delete(ctx context.Context, id int64) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

type stubProductService struct{}

func (stubProductService) Create(ctx context.Context, input productsvc.CreateProductDTO) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: 1, Name: input.Name, Price: input.Price}, nil
}

func (stubProductService) Get(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id, Name: "stub"}, nil
}

func (stubProductService) List(ctx context.Context, category string) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (stubProductService) Update(ctx context.Context, id int64, input productsvc.UpdateProductDTO) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id, Name: "stub"}, nil
}

func (stubProductService) Delete(ctx context.Context, id int64) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id, Name: "stub"}, nil
}

func (stubProductService) Popular(ctx context.Context) ([]productsvc.PopularProductDTO, error) {
	return []productsvc.PopularProductDTO{}, nil
}

type stubOrderService struct{}

func (stubOrderService) Open(ctx context.Context, userID int64) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: 1, UserID: userID, Status: enums.OrderStatusActive}, nil
}

func (stubOrderService) Current(ctx context.Context, userID int64) (*ordersvc.OrderWithItemsDTO, error) {
	return nil, nil
}

func (stubOrderService) Completed(ctx context.Context, userID int64) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func (stubOrderService) AddProduct(ctx context.Context, input ordersvc.AddProductInput) (*ordersvc.OrderProductDTO, error) {
	return &ordersvc.OrderProductDTO{ID: 1, OrderID: input.OrderID, ProductID: input.ProductID, Quantity: input.Quantity}, nil
}

func (stubOrderService) Complete(ctx context.Context, orderID int64) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID, Status: enums.OrderStatusComplete}, nil
}

func (stubOrderService) RecentPurchases(ctx context.Context, userID int64) ([]ordersvc.RecentPurchaseDTO, error) {
	return []ordersvc.RecentPurchaseDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	registry := prometheus.NewRegistry()
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil, // redis off
		metrics.NewHTTPMetrics(registry),
		registry,
		stubUserService{},
		stubProductService{},
		stubOrderService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, userID int64) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:    userID,
		FirstName: "Nadia",
		LastName:  "Hart",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if resp.Header().Get("X-Storefront-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-Storefront-Env"))
	}
}

func TestHealthReadySkipsMissingRedis(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness without redis got %d", resp.Code)
	}
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}

func TestProductReadsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, target := range []string{"/products", "/products/popular", "/products/1"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", target, resp.Code)
		}
	}
}

func TestProductWritesRequireToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Keyboard","price":5999}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Keyboard","price":5999}`))
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, 7))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 with token got %d", resp.Code)
	}
}

func TestRegistrationIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"first_name":"Nadia","last_name":"Hart","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for registration got %d", resp.Code)
	}
}

func TestUserIndexRequiresToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/users", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, 7))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestOrderRoutesRequireToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"user_id":7}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"user_id":7}`))
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, 7))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 with token got %d", resp.Code)
	}
}

func TestCurrentOrderRouteResolvesUserParam(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/orders/current/7", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, 7))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for current order got %d", resp.Code)
	}
}
