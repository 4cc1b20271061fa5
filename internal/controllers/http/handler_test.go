package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/cart"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type memorySessions struct {
	tokens map[string]bool
}

func (s *memorySessions) Create(ctx context.Context, token string, ttl time.Duration) error {
	s.tokens[token] = true
	return nil
}

func (s *memorySessions) Exists(ctx context.Context, token string) (bool, error) {
	return s.tokens[token], nil
}

func (s *memorySessions) Destroy(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type memoryCartSnapshots struct {
	snapshots map[string][]domain.CartItem
}

func (s *memoryCartSnapshots) Load(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	return s.snapshots[cartID], nil
}

func (s *memoryCartSnapshots) Save(ctx context.Context, cartID string, items []domain.CartItem) error {
	s.snapshots[cartID] = items
	return nil
}

func (s *memoryCartSnapshots) Delete(ctx context.Context, cartID string) error {
	delete(s.snapshots, cartID)
	return nil
}

type testEnv struct {
	router    *gin.Engine
	orderRepo *mocks.MockOrderRepository
	leadRepo  *mocks.MockLeadRepository
	prodRepo  *mocks.MockProductRepository
	publisher *mocks.MockPublisher
	pincode   *mocks.MockPincodeClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		orderRepo: new(mocks.MockOrderRepository),
		leadRepo:  new(mocks.MockLeadRepository),
		prodRepo:  new(mocks.MockProductRepository),
		publisher: new(mocks.MockPublisher),
		pincode:   new(mocks.MockPincodeClient),
	}

	catalogSvc := services.NewCatalogService(
		env.prodRepo,
		new(mocks.MockContentRepository[domain.Category]),
		new(mocks.MockContentRepository[domain.Banner]),
		new(mocks.MockContentRepository[domain.Blog]),
		new(mocks.MockContentRepository[domain.GalleryItem]),
	)
	orderSvc := services.NewOrderService(env.orderRepo, env.publisher)
	leadSvc := services.NewLeadService(env.leadRepo, env.publisher)
	cartStore := cart.NewStore(&memoryCartSnapshots{snapshots: make(map[string][]domain.CartItem)})
	authSvc := auth.NewService("admin@example.com", "s3cret", time.Hour,
		&memorySessions{tokens: make(map[string]bool)})

	handler := NewHandler(catalogSvc, orderSvc, leadSvc, cartStore, authSvc, env.pincode)
	env.router = gin.New()
	handler.RegisterRoutes(env.router)
	return env
}

func doJSON(router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCheckout() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productId": 1, "name": "Widget", "price": 100, "quantity": 2, "image": "widget.jpg"},
		},
		"customer": map[string]any{
			"name": "Test Customer", "email": "c@example.com", "phone": "9876543210",
			"address": "12 Test Lane", "city": "Pune", "state": "MH", "zipCode": "411001",
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.orderRepo.On("Save", mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Order).ID = 1
	})
	env.publisher.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()

	w := doJSON(env.router, http.MethodPost, "/orders", validCheckout())

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			OrderNumber string  `json:"orderNumber"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.OrderNumber)
	assert.Equal(t, "pending", resp.Data.Status)
	assert.Equal(t, 200.0, resp.Data.TotalAmount)
	time.Sleep(100 * time.Millisecond)
}

func TestCreateOrderEndpoint_ValidationRejected(t *testing.T) {
	env := newTestEnv(t)

	body := validCheckout()
	delete(body["customer"].(map[string]any), "zipCode")

	w := doJSON(env.router, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.orderRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestTrackOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)
	order := &domain.Order{ID: 1, OrderNumber: "ORD-123", Status: domain.StatusShipped}
	env.orderRepo.On("FindByOrderNumber", "ord-123").Return(order, nil)

	w := doJSON(env.router, http.MethodGet, "/orders/track/ORD-123", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orderNumber":"ORD-123"`)
	assert.Contains(t, w.Body.String(), `"progress"`)
}

func TestTrackOrderEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.orderRepo.On("FindByOrderNumber", "ord-missing").Return(nil, nil)

	w := doJSON(env.router, http.MethodGet, "/orders/track/ORD-MISSING", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCreateLeadEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.leadRepo.On("Save", mock.AnythingOfType("*domain.Lead")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Lead).ID = 1
	})
	env.publisher.On("Publish", mock.Anything, "lead.created", mock.Anything).Return(nil).Maybe()

	w := doJSON(env.router, http.MethodPost, "/leads", map[string]any{
		"name": "Asha", "email": "asha@example.com", "phone": "9000000001",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"new"`)
	time.Sleep(100 * time.Millisecond)
}

func TestPincodeEndpoint_SoftFailure(t *testing.T) {
	env := newTestEnv(t)
	env.pincode.On("Lookup", mock.Anything, "411001").Return(nil, context.DeadlineExceeded)

	w := doJSON(env.router, http.MethodGet, "/pincode/411001", nil)
	assert.Equal(t, http.StatusOK, w.Code, "pincode failures never block the caller")
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(env.router, http.MethodGet, "/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(env.router, http.MethodGet, "/admin/orders", nil,
		&http.Cookie{Name: auth.SessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func login(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	w := doJSON(env.router, http.MethodPost, "/admin/login", map[string]any{
		"email": "admin@example.com", "password": "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestAdminLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.orderRepo.On("FindAll").Return([]domain.Order{}, nil)

	session := login(t, env)

	w := doJSON(env.router, http.MethodGet, "/admin/orders", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminUpdateProduct_Images(t *testing.T) {
	env := newTestEnv(t)
	session := login(t, env)

	updated := &domain.Product{ID: 1, Name: "Widget", Images: domain.StringList{"front.jpg", "side.jpg"}}
	env.prodRepo.On("Update", uint64(1), map[string]any{
		"images": domain.StringList{"front.jpg", "side.jpg"},
	}).Return(updated, nil)

	w := doJSON(env.router, http.MethodPut, "/admin/products/1",
		map[string]any{"images": []string{"front.jpg", "side.jpg"}}, session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"images":["front.jpg","side.jpg"]`)
	env.prodRepo.AssertExpectations(t)
}

func TestCreateOrderEndpoint_RepositoryFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.orderRepo.On("Save", mock.AnythingOfType("*domain.Order")).Return(errors.New("connection refused"))

	w := doJSON(env.router, http.MethodPost, "/orders", validCheckout())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(env.router, http.MethodPost, "/admin/login", map[string]any{
		"email": "admin@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.prodRepo.On("FindByID", uint64(1)).Return(&domain.Product{
		ID: 1, Name: "Widget", Price: 100, Images: domain.StringList{"widget.jpg"},
	}, nil)

	w := doJSON(env.router, http.MethodPost, "/cart/c1/items", map[string]any{"productId": 1})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(env.router, http.MethodPost, "/cart/c1/items", map[string]any{"productId": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalItems":2`)
	assert.Contains(t, w.Body.String(), `"totalPrice":200`)

	w = doJSON(env.router, http.MethodPut, "/cart/c1/items/1", map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalItems":0`)
}
