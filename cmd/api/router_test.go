package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test", Environment: "test", Port: "0", Version: "test"},
		Session: config.SessionConfig{
			IdleTimeout:    time.Hour,
			SweepInterval:  time.Minute,
			EventHeartbeat: time.Second,
		},
		Checkout: config.CheckoutConfig{
			SettlementLatency:              100 * time.Millisecond,
			SuccessResetDelay:              20 * time.Millisecond,
			InstantTransferDiscountPercent: 5,
			TrackingQueue:                  "low",
		},
		Catalog: config.CatalogConfig{CacheTTL: time.Minute},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// browser keeps the session cookie between requests
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c := container.NewContainerWithConfig(testConfig())
	t.Cleanup(c.Cleanup)
	return &browser{t: t, router: SetupRouter(c)}
}

func (b *browser) do(method, path string, body interface{}) (int, envelope) {
	b.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}

	var env envelope
	require.NoError(b.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type cartView struct {
	Items []struct {
		ProductID     string          `json:"product_id"`
		SelectedColor string          `json:"selected_color"`
		Quantity      int             `json:"quantity"`
		Subtotal      decimal.Decimal `json:"subtotal"`
	} `json:"items"`
	TotalItems int             `json:"total_items"`
	CartTotal  decimal.Decimal `json:"cart_total"`
	PanelOpen  bool            `json:"panel_open"`
}

type checkoutView struct {
	Step            string `json:"step"`
	IsSettling      bool   `json:"is_settling"`
	CanAdvance      bool   `json:"can_advance"`
	SettlementError string `json:"settlement_error"`
	DiscountBadge   *int   `json:"discount_badge"`
	LastReceipt     *struct {
		OrderNumber string          `json:"order_number"`
		Amount      decimal.Decimal `json:"amount"`
	} `json:"last_receipt"`
}

type transitionView struct {
	Moved    bool         `json:"moved"`
	Checkout checkoutView `json:"checkout"`
}

func TestHealth(t *testing.T) {
	b := newBrowser(t)
	code, env := b.do(http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	data := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "disabled", data["redis"])
}

func TestCatalogRoutes(t *testing.T) {
	b := newBrowser(t)

	code, env := b.do(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 8, env.Meta.Total)

	code, env = b.do(http.MethodGet, "/api/v1/products?promo=true&sort=price_asc", nil)
	require.Equal(t, http.StatusOK, code)
	products := decode[[]struct {
		ID    string          `json:"id"`
		Price decimal.Decimal `json:"price"`
	}](t, env.Data)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"7", "4", "2"}, []string{products[0].ID, products[1].ID, products[2].ID})

	code, env = b.do(http.MethodGet, "/api/v1/products?sort=cheapest", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FILTER", env.Error.Code)

	code, env = b.do(http.MethodGet, "/api/v1/products/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", env.Error.Code)

	code, env = b.do(http.MethodGet, "/api/v1/categories", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]interface{}](t, env.Data), 5)
}

func TestCartRoutes(t *testing.T) {
	b := newBrowser(t)

	code, env := b.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"product_id": "1", "quantity": 1, "color": "#800020",
	})
	require.Equal(t, http.StatusCreated, code, env)
	require.NotEmpty(t, b.cookies)
	assert.Equal(t, middleware.SessionCookieName, b.cookies[0].Name)

	code, env = b.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"product_id": "1", "quantity": 2, "color": "#800020",
	})
	require.Equal(t, http.StatusCreated, code)
	cart := decode[cartView](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("137.70").Equal(cart.CartTotal))
	assert.True(t, cart.PanelOpen)

	code, env = b.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"product_id": "1", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_QUANTITY", env.Error.Code)

	code, env = b.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"product_id": "404", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", env.Error.Code)

	code, env = b.do(http.MethodPost, "/api/v1/cart/toggle", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, decode[map[string]bool](t, env.Data)["panel_open"])

	code, _ = b.do(http.MethodDelete, "/api/v1/cart/items/404", nil)
	assert.Equal(t, http.StatusOK, code, "removing an absent product is a no-op")

	code, env = b.do(http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(t, http.StatusOK, code)
	removed := decode[struct {
		RemovedLines int      `json:"removed_lines"`
		Cart         cartView `json:"cart"`
	}](t, env.Data)
	assert.Equal(t, 1, removed.RemovedLines)
	assert.Equal(t, 0, removed.Cart.TotalItems)
}

func TestSessionsAreIsolatedByCookie(t *testing.T) {
	alice := newBrowser(t)
	code, _ := alice.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"product_id": "2", "quantity": 1})
	require.Equal(t, http.StatusCreated, code)

	bob := &browser{t: t, router: alice.router}
	code, env := bob.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, decode[cartView](t, env.Data).TotalItems)

	_, env = alice.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, 1, decode[cartView](t, env.Data).TotalItems)
}

func TestCheckoutFlow(t *testing.T) {
	b := newBrowser(t)

	// empty cart blocks the first step
	code, env := b.do(http.MethodPost, "/api/v1/checkout/next", nil)
	require.Equal(t, http.StatusOK, code)
	tr := decode[transitionView](t, env.Data)
	assert.False(t, tr.Moved)
	assert.Equal(t, "cart", tr.Checkout.Step)

	b.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"product_id": "1", "quantity": 2})
	b.do(http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"product_id": "6", "quantity": 1})

	_, env = b.do(http.MethodPost, "/api/v1/checkout/next", nil)
	assert.True(t, decode[transitionView](t, env.Data).Moved)

	code, env = b.do(http.MethodPut, "/api/v1/checkout/email", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = b.do(http.MethodPut, "/api/v1/checkout/email", map[string]string{"email": "buyer@example.com"})
	require.Equal(t, http.StatusOK, code)
	_, env = b.do(http.MethodPost, "/api/v1/checkout/next", nil)
	assert.Equal(t, "shipping", decode[transitionView](t, env.Data).Checkout.Step)

	b.do(http.MethodPut, "/api/v1/checkout/address", map[string]string{"street": "Rua A", "number": "1"})
	_, env = b.do(http.MethodPost, "/api/v1/checkout/next", nil)
	assert.False(t, decode[transitionView](t, env.Data).Moved, "city is required")

	b.do(http.MethodPut, "/api/v1/checkout/address", map[string]string{"street": "Rua A", "number": "1", "city": "Recife"})
	_, env = b.do(http.MethodPost, "/api/v1/checkout/next", nil)
	assert.Equal(t, "payment", decode[transitionView](t, env.Data).Checkout.Step)

	code, env = b.do(http.MethodPut, "/api/v1/checkout/payment-method", map[string]string{"payment_method": "cash"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PAYMENT_METHOD", env.Error.Code)

	code, env = b.do(http.MethodPost, "/api/v1/checkout/finalize", nil)
	require.Equal(t, http.StatusAccepted, code)
	started := decode[struct {
		Started   bool   `json:"started"`
		Reference string `json:"reference"`
	}](t, env.Data)
	assert.True(t, started.Started)
	assert.NotEmpty(t, started.Reference)

	code, env = b.do(http.MethodPost, "/api/v1/checkout/finalize", nil)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decode[struct {
		Started bool `json:"started"`
	}](t, env.Data).Started)

	var final checkoutView
	require.Eventually(t, func() bool {
		_, env := b.do(http.MethodGet, "/api/v1/checkout", nil)
		final = decode[checkoutView](t, env.Data)
		return final.Step == "success"
	}, 2*time.Second, 10*time.Millisecond)

	require.NotNil(t, final.LastReceipt)
	assert.True(t, decimal.RequireFromString("110.70").Equal(final.LastReceipt.Amount))

	_, env = b.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, 0, decode[cartView](t, env.Data).TotalItems)

	b.do(http.MethodPost, "/api/v1/checkout/close", nil)
	require.Eventually(t, func() bool {
		_, env := b.do(http.MethodGet, "/api/v1/checkout", nil)
		return decode[checkoutView](t, env.Data).Step == "cart"
	}, 2*time.Second, 10*time.Millisecond)
}
