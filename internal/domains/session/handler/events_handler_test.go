package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/checkout/gateway/mock"
	checkoutService "storefront-backend/internal/domains/checkout/service"
	sessionService "storefront-backend/internal/domains/session/service"
	"storefront-backend/internal/shared/middleware"
)

// streamRecorder is a ResponseRecorder that can be read while the stream is open
type streamRecorder struct {
	*httptest.ResponseRecorder
	mu     sync.Mutex
	closed chan bool
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(b)
}

func (r *streamRecorder) WriteString(s string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.WriteString(s)
}

func (r *streamRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ResponseRecorder.Flush()
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func (r *streamRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Body.String()
}

func newRouter(t *testing.T) (*gin.Engine, *sessionService.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := sessionService.NewRegistry(sessionService.Dependencies{
		Gateway:  mock.NewSimulatedGateway(time.Millisecond),
		Checkout: checkoutService.Options{ResetDelay: time.Millisecond},
	}, time.Hour)

	cfg := middleware.DefaultSessionMiddlewareConfig(registry)
	cfg.CookieSecure = false

	h := NewHandler(time.Hour)
	r := gin.New()
	r.Use(middleware.Session(cfg))
	r.GET("/session", h.GetSession)
	r.GET("/session/events", h.Events)
	return r, registry
}

const sessionID = "6f1c7c2e-8d1e-4a53-9a43-2b0a4c1d9e10"

func TestGetSession(t *testing.T) {
	r, registry := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sessionID)
	assert.Empty(t, w.Result().Cookies(), "known cookie is not reissued")
	_, ok := registry.Get(sessionID)
	assert.True(t, ok)
}

func TestGetSession_InvalidCookieGetsNewSession(t *testing.T) {
	r, registry := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "not-a-uuid", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 1, registry.Len())
}

func TestEvents_StreamsSnapshots(t *testing.T) {
	r, registry := newRouter(t)
	sess, _ := registry.GetOrCreate(sessionID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/session/events", nil).WithContext(ctx)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionID})
	w := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return strings.Count(w.body(), "event:"+EventSnapshot) >= 1
	}, time.Second, 5*time.Millisecond, "initial snapshot")

	p := catalog.Product{ID: "1", Name: "Laço", Price: decimal.RequireFromString("45.90")}
	require.NoError(t, sess.Cart.AddItem(p, 1, ""))

	require.Eventually(t, func() bool {
		return strings.Count(w.body(), "event:"+EventSnapshot) >= 2
	}, time.Second, 5*time.Millisecond, "snapshot after add")
	assert.Contains(t, w.body(), `"total_items":1`)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after the client went away")
	}
}
