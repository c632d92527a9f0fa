package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/devbackend"
	"github.com/Skotchmaster/foodcourt-admin/internal/httpserver"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/querycache"
	"github.com/Skotchmaster/foodcourt-admin/internal/session"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv runs the admin panel against a live dev backend, the same wiring
// the two binaries use.
type testEnv struct {
	panel      *echo.Echo
	backendURL string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := devbackend.Open("", ":memory:")
	require.NoError(t, err)
	store := &devbackend.Store{DB: db}
	require.NoError(t, store.EnsureAdmin(context.Background(), "admin@example.com", "secret"))

	be := echo.New()
	be.Validator = transport.NewValidator()
	(&devbackend.Server{Store: store, JWTSecret: []byte("test-secret"), UploadDir: t.TempDir()}).Register(be)
	beSrv := httptest.NewServer(be)
	t.Cleanup(beSrv.Close)

	api := backend.NewClient(beSrv.URL + "/api")
	cache := querycache.New()
	sess := session.New(api)
	api.OnUnauthorized = func() {
		sess.Clear()
		cache.Clear()
	}

	panel := echo.New()
	panel.Validator = transport.NewValidator()
	(&httpserver.Server{Backend: api, Session: sess, Cache: cache, AssetRoot: beSrv.URL}).Register(panel)

	return &testEnv{panel: panel, backendURL: beSrv.URL}
}

func (env *testEnv) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.panel.ServeHTTP(rec, req)
	return rec
}

func TestAdminFlow(t *testing.T) {
	env := newTestEnv(t)

	// before login every protected view bounces to the login route
	rec := env.doJSON(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "/login")

	rec = env.doJSON(http.MethodPost, "/login", map[string]string{
		"email":    "admin@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var admin models.Admin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admin))
	require.Equal(t, "admin@example.com", admin.Email)

	// create a category and see it come back through the cached read
	rec = env.doJSON(http.MethodPost, "/categories", transport.CategoryPayload{
		Name:      "Soups",
		Slug:      "soups",
		SortOrder: 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var soups models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &soups))
	require.NotEmpty(t, soups.ID)
	require.False(t, soups.CreatedAt.IsZero())

	rec = env.doJSON(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Soups", categories[0].Name)
	assert.Equal(t, "soups", categories[0].Slug)
	assert.Equal(t, 1, categories[0].SortOrder)

	// food item bound to the category
	rec = env.doJSON(http.MethodPost, "/food-items", transport.FoodItemPayload{
		Name:       "borscht",
		Title:      "Borscht",
		Price:      5.5,
		CategoryID: soups.ID,
		Portions: []transport.PortionPayload{
			{Label: "small", Price: 4},
			{Label: "large", Price: 6.5},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodGet, "/food-items?categoryId="+soups.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.FoodItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Soups", items[0].Category.Name)
	require.Len(t, items[0].Portions, 2)

	// a customer order arrives straight at the backend
	orderBody, _ := json.Marshal(transport.CreateOrderRequest{
		Name:    "Ivan",
		Phone:   "+70000000000",
		Address: "Somewhere 5",
		Items: []models.OrderItem{
			{FoodItemID: items[0].ID, Name: "borscht", Quantity: 2, Price: 5.5, Portion: "large"},
		},
	})
	resp, err := http.Post(env.backendURL+"/api/orders", echo.MIMEApplicationJSON, bytes.NewReader(orderBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	rec = env.doJSON(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.Equal(t, models.OrderStatusNew, orders[0].Status)

	rec = env.doJSON(http.MethodPatch, "/orders/"+orders[0].ID+"/status", transport.StatusPayload{Status: models.OrderStatusDone})
	require.Equal(t, http.StatusOK, rec.Code)
	var done models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	assert.Equal(t, models.OrderStatusDone, done.Status)

	// dashboard sees all three collections
	rec = env.doJSON(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Categories     int                        `json:"categories"`
		FoodItems      int                        `json:"foodItems"`
		Orders         int                        `json:"orders"`
		OrdersByStatus map[models.OrderStatus]int `json:"ordersByStatus"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, 1, dash.Categories)
	assert.Equal(t, 1, dash.FoodItems)
	assert.Equal(t, 1, dash.Orders)
	assert.Equal(t, 1, dash.OrdersByStatus[models.OrderStatusDone])

	// logout drops the session; the next view bounces again
	rec = env.doJSON(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}

func TestAdminFlowRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
