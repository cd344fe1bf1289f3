package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aether-be/internal/auth"
	"aether-be/internal/logger"
	"aether-be/internal/middleware"
	"aether-be/internal/order"
	"aether-be/internal/payment"
	"aether-be/internal/product"
	"aether-be/internal/shipment"
	"aether-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	products  *MockProductService
	orders    *MockOrderService
	shipments *MockShipmentService
	users     *MockUserService
	tokens    *auth.TokenManager
	handler   http.Handler
}

func newHarness() *harness {
	h := &harness{
		products:  new(MockProductService),
		orders:    new(MockOrderService),
		shipments: new(MockShipmentService),
		users:     new(MockUserService),
		tokens:    auth.NewTokenManager("testsecret"),
	}

	engine := NewRouter(Services{
		Products:  h.products,
		Orders:    h.orders,
		Shipments: h.shipments,
		Users:     h.users,
	}, false)

	h.handler = logger.RequestIDMiddleware(middleware.AuthMiddleware(h.tokens)(engine))
	return h
}

func (h *harness) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(logger.RequestIDHeader, "req-1")

	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}

func (h *harness) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := h.tokens.Generate(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return tok
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCatalogRoutes(t *testing.T) {
	t.Run("CreateProduct", func(t *testing.T) {
		h := newHarness()
		h.products.On("Create", mock.Anything, mock.MatchedBy(func(in product.NewProduct) bool {
			return in.SKU == "TEST-001" && in.Stock == 5 && in.Price.Equal(decimal.RequireFromString("19.99"))
		})).Return(&product.Product{ID: "p1", SKU: "TEST-001"}, nil)

		w := h.do(t, http.MethodPost, "/catalog",
			`{"name":"Vela","price":19.99,"sku":"TEST-001","stock":5,"images":["a.jpg"]}`, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), `"sku":"TEST-001"`)
	})

	t.Run("CreateProductMissingStock", func(t *testing.T) {
		h := newHarness()

		w := h.do(t, http.MethodPost, "/catalog", `{"name":"Vela","price":1,"sku":"X"}`, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
		assert.Contains(t, env.Error.Message, "Stock")
		h.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CreateProductRejectedByService", func(t *testing.T) {
		h := newHarness()
		h.products.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.Join(product.ErrInvalidProduct, errors.New("price must be greater than zero")))

		w := h.do(t, http.MethodPost, "/catalog", `{"name":"Vela","price":0,"sku":"X","stock":1}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetMissingProduct", func(t *testing.T) {
		h := newHarness()
		h.products.On("GetByID", mock.Anything, "missing").Return(nil, product.ErrProductNotFound)

		w := h.do(t, http.MethodGet, "/catalog/missing", "", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decode(t, w)
		assert.Equal(t, ErrCodeNotFound, env.Error.Code)
		assert.Equal(t, "req-1", env.Error.RequestID)
	})

	t.Run("ListProducts", func(t *testing.T) {
		h := newHarness()
		h.products.On("List", mock.Anything).Return([]*product.Product{{ID: "p1"}, {ID: "p2"}}, nil)

		w := h.do(t, http.MethodGet, "/catalog", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var items []product.Product
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
		assert.Len(t, items, 2)
	})

	t.Run("InternalErrorIsMasked", func(t *testing.T) {
		h := newHarness()
		h.products.On("List", mock.Anything).Return(nil, errors.New("pq: connection refused"))

		w := h.do(t, http.MethodGet, "/catalog", "", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decode(t, w)
		assert.Equal(t, ErrCodeInternal, env.Error.Code)
		assert.NotContains(t, env.Error.Message, "pq")
	})
}

const orderBody = `{
	"userId": "u1",
	"items": [{"productId": "p1", "quantity": 1, "price": 19.99}],
	"total": 19.99,
	"shipment": {"address": "Calle 1"},
	"shippingAddress": {
		"street": "Calle 1", "city": "Madrid", "state": "MD",
		"postalCode": "28001", "country": "ES", "paymentMethod": "TARJETA_CREDITO"
	}
}`

func TestTransactionalRoutes(t *testing.T) {
	t.Run("CreateOrder", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.UserID == "u1" &&
				len(in.Items) == 1 &&
				in.Shipment != nil &&
				in.ShippingAddress != nil &&
				in.ShippingAddress.PaymentMethod == order.PaymentCreditCard
		})).Return(&order.Order{ID: "o1", Status: order.StatusPending}, nil)

		w := h.do(t, http.MethodPost, "/transactional", orderBody, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"status":"PENDIENTE"`)
	})

	t.Run("CreateOrderUsesSessionUser", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.UserID == "session-user"
		})).Return(&order.Order{ID: "o1"}, nil)

		body := `{"items":[{"productId":"p1","quantity":1,"price":5}],"total":5}`
		w := h.do(t, http.MethodPost, "/transactional", body, h.token(t, "session-user", "CLIENTE"))

		assert.Equal(t, http.StatusCreated, w.Code)
		h.orders.AssertExpectations(t)
	})

	t.Run("CreateOrderUnknownPaymentMethod", func(t *testing.T) {
		h := newHarness()

		body := strings.Replace(orderBody, "TARJETA_CREDITO", "BITCOIN", 1)
		w := h.do(t, http.MethodPost, "/transactional", body, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w).Error.Message, "paymentmethod")
		h.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("CreateOrderWithoutItems", func(t *testing.T) {
		h := newHarness()

		w := h.do(t, http.MethodPost, "/transactional", `{"userId":"u1","items":[],"total":0}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CreateOrderUnknownUser", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, order.ErrUserNotFound)

		w := h.do(t, http.MethodPost, "/transactional", orderBody, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListFiltersByUser", func(t *testing.T) {
		h := newHarness()
		h.orders.On("ListOrders", mock.Anything, order.Filter{UserID: "u1"}).
			Return([]*order.Order{{ID: "o1", UserID: "u1"}}, nil)

		w := h.do(t, http.MethodGet, "/transactional?userId=u1", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		h.orders.AssertExpectations(t)
	})

	t.Run("GetOrder", func(t *testing.T) {
		h := newHarness()
		h.orders.On("GetOrder", mock.Anything, "o1").Return(&order.Order{ID: "o1"}, nil)

		w := h.do(t, http.MethodGet, "/transactional/o1", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CancelOrder", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CancelOrder", mock.Anything, "o1").
			Return(&order.Order{ID: "o1", Status: order.StatusCancelled}, nil)

		w := h.do(t, http.MethodPatch, "/transactional/o1/cancel", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"status":"CANCELADO"`)
	})

	t.Run("CancelMissingOrder", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CancelOrder", mock.Anything, "missing").Return(nil, order.ErrOrderNotFound)

		w := h.do(t, http.MethodPatch, "/transactional/missing/cancel", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PayPalCreateOrder", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CreatePayment", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("49.90"))
		}), "USD").Return(&payment.OrderResult{ID: "PP-1", Status: "CREATED"}, nil)

		w := h.do(t, http.MethodPost, "/transactional/paypal/create-order", `{"amount":"49.90","currency":"USD"}`, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"id":"PP-1"`)
	})

	t.Run("PayPalGatewayFailure", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CreatePayment", mock.Anything, mock.Anything, "").
			Return(nil, errors.Join(payment.ErrPaymentFailed, errors.New("paypal status 500")))

		w := h.do(t, http.MethodPost, "/transactional/paypal/create-order", `{"amount":10}`, "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, ErrCodePaymentFailed, decode(t, w).Error.Code)
	})

	t.Run("PayPalCaptureCompleted", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CapturePayment", mock.Anything, "PP-1", mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.UserID == "u1"
		})).Return(&order.CaptureOutcome{
			Capture: &payment.CaptureResult{ID: "PP-1", Status: "COMPLETED"},
			Order:   &order.Order{ID: "o1"},
		}, nil)

		w := h.do(t, http.MethodPost, "/transactional/paypal/capture-order",
			`{"orderID":"PP-1","orderData":`+orderBody+`}`, "")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("PayPalCaptureNotCompleted", func(t *testing.T) {
		h := newHarness()
		h.orders.On("CapturePayment", mock.Anything, "PP-2", mock.Anything).
			Return(nil, order.ErrPaymentNotCompleted)

		w := h.do(t, http.MethodPost, "/transactional/paypal/capture-order",
			`{"orderID":"PP-2","orderData":`+orderBody+`}`, "")

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})
}

func TestLogisticsRoutes(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		h := newHarness()
		h.shipments.On("Create", mock.Anything, shipment.NewShipment{OrderID: "o1", Address: "Calle 1"}).
			Return(&shipment.Shipment{ID: "s1", TrackingNumber: "TRK-1", Status: shipment.StatusPreparing}, nil)

		w := h.do(t, http.MethodPost, "/logistics", `{"orderId":"o1","address":"Calle 1"}`, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"trackingNumber":"TRK-1"`)
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		h := newHarness()
		h.shipments.On("Create", mock.Anything, mock.Anything).Return(nil, shipment.ErrShipmentExists)

		w := h.do(t, http.MethodPost, "/logistics", `{"orderId":"o1","address":"Calle 1"}`, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("CreateForUnknownOrder", func(t *testing.T) {
		h := newHarness()
		h.shipments.On("Create", mock.Anything, mock.Anything).Return(nil, shipment.ErrOrderNotFound)

		w := h.do(t, http.MethodPost, "/logistics", `{"orderId":"ghost","address":"x"}`, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListAndGet", func(t *testing.T) {
		h := newHarness()
		h.shipments.On("List", mock.Anything).Return([]*shipment.Shipment{{ID: "s1"}}, nil)
		h.shipments.On("GetByID", mock.Anything, "missing").Return(nil, shipment.ErrShipmentNotFound)

		assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/logistics", "", "").Code)
		assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/logistics/missing", "", "").Code)
	})
}

func TestAuthRoutes(t *testing.T) {
	t.Run("Register", func(t *testing.T) {
		h := newHarness()
		h.users.On("Register", mock.Anything, user.RegisterInput{
			Email: "ana@example.com", Password: "secret123", Name: "Ana",
		}).Return(&user.AuthResult{
			Token: "tok",
			User:  &user.User{ID: "u1", Email: "ana@example.com", PasswordHash: "salt:hash", Role: user.RoleCustomer},
		}, nil)

		w := h.do(t, http.MethodPost, "/auth/register",
			`{"email":"ana@example.com","password":"secret123","name":"Ana"}`, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "salt:hash")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.AccessTokenCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("RegisterDuplicate", func(t *testing.T) {
		h := newHarness()
		h.users.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrEmailExists)

		w := h.do(t, http.MethodPost, "/auth/register", `{"email":"ana@example.com","password":"secret123"}`, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, ErrCodeConflict, decode(t, w).Error.Code)
	})

	t.Run("RegisterBadEmail", func(t *testing.T) {
		h := newHarness()

		w := h.do(t, http.MethodPost, "/auth/register", `{"email":"nope","password":"secret123"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("LoginFailuresLookTheSame", func(t *testing.T) {
		h := newHarness()
		h.users.On("Login", mock.Anything, "ghost@example.com", "pw").Return(nil, user.ErrInvalidCredentials)
		h.users.On("Login", mock.Anything, "ana@example.com", "wrong").Return(nil, user.ErrInvalidCredentials)

		unknown := h.do(t, http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"pw"}`, "")
		wrong := h.do(t, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`, "")

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, decode(t, unknown).Error.Message, decode(t, wrong).Error.Message)
	})

	t.Run("Login", func(t *testing.T) {
		h := newHarness()
		h.users.On("Login", mock.Anything, "ana@example.com", "secret123").
			Return(&user.AuthResult{Token: "tok", User: &user.User{ID: "u1"}}, nil)

		w := h.do(t, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret123"}`, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"token":"tok"`)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		h := newHarness()

		w := h.do(t, http.MethodGet, "/admin/stats", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		h.orders.AssertNotCalled(t, "DashboardStats", mock.Anything)
	})

	t.Run("Customer", func(t *testing.T) {
		h := newHarness()

		w := h.do(t, http.MethodGet, "/admin/stats", "", h.token(t, "u1", "CLIENTE"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Administrator", func(t *testing.T) {
		h := newHarness()
		h.orders.On("DashboardStats", mock.Anything).Return(&order.DashboardStats{
			TotalProducts: 3,
			PendingOrders: 2,
			TotalSales:    decimal.RequireFromString("99.50"),
		}, nil)

		w := h.do(t, http.MethodGet, "/admin/stats", "", h.token(t, "a1", middleware.RoleAdmin))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"pendingOrders":2`)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		h := newHarness()

		w := h.do(t, http.MethodGet, "/admin/stats", "", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{product.ErrProductNotFound, http.StatusNotFound},
		{order.ErrOrderNotFound, http.StatusNotFound},
		{shipment.ErrShipmentNotFound, http.StatusNotFound},
		{user.ErrEmailExists, http.StatusConflict},
		{shipment.ErrShipmentExists, http.StatusConflict},
		{user.ErrInvalidCredentials, http.StatusUnauthorized},
		{order.ErrInvalidOrder, http.StatusBadRequest},
		{user.ErrInvalidInput, http.StatusBadRequest},
		{order.ErrPaymentNotCompleted, http.StatusPaymentRequired},
		{payment.ErrPaymentFailed, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, _ := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestHealth(t *testing.T) {
	h := newHarness()
	w := h.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
