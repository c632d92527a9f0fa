package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/querycache"
	"github.com/Skotchmaster/foodcourt-admin/internal/session"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	e     *echo.Echo
	cache *querycache.Cache
}

func newEnv(t *testing.T, h http.Handler) *env {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	api := backend.NewClient(ts.URL)
	cache := querycache.New()
	sess := session.New(api)
	api.OnUnauthorized = func() {
		sess.Clear()
		cache.Clear()
	}

	e := echo.New()
	e.Validator = transport.NewValidator()
	srv := &Server{Backend: api, Session: sess, Cache: cache, AssetRoot: "http://assets.local"}
	srv.Register(e)

	return &env{e: e, cache: cache}
}

// authedMux serves a valid identity plus whatever routes the test adds.
func authedMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Admin{ID: "a1", Email: "admin@example.com"})
	})
	return mux
}

func (ev *env) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ev.e.ServeHTTP(rec, req)
	return rec
}

func TestGuardRedirectsBrowserToLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ev := newEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	ev.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestGuardAnswersAPIConsumersWith401(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ev := newEnv(t, mux)

	rec := ev.doJSON(http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}

func TestGuardPassesAuthenticatedRequests(t *testing.T) {
	t.Parallel()

	mux := authedMux()
	ev := newEnv(t, mux)

	rec := ev.doJSON(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var admin models.Admin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admin))
	assert.Equal(t, "admin@example.com", admin.Email)
}

// An unset category must be rejected before any request leaves the process.
func TestCreateFoodItemWithoutCategoryNeverHitsBackend(t *testing.T) {
	t.Parallel()

	var createCalls int
	var mu sync.Mutex
	mux := authedMux()
	mux.HandleFunc("/food-items", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		createCalls++
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	ev := newEnv(t, mux)

	rec := ev.doJSON(http.MethodPost, "/food-items", map[string]any{
		"name":  "borscht",
		"title": "Borscht",
		"price": 5.5,
		// categoryId deliberately absent
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, createCalls)
}

func TestCreateCategoryInvalidatesCollection(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	listCalls := 0
	categories := []models.Category{}

	mux := authedMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			listCalls++
			_ = json.NewEncoder(w).Encode(categories)
		case http.MethodPost:
			var req transport.CategoryPayload
			_ = json.NewDecoder(r.Body).Decode(&req)
			created := models.Category{ID: "c1", Name: req.Name, Slug: req.Slug, SortOrder: req.SortOrder}
			categories = append(categories, created)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		}
	})
	ev := newEnv(t, mux)

	// two reads, one backend call
	require.Equal(t, http.StatusOK, ev.doJSON(http.MethodGet, "/categories", nil).Code)
	require.Equal(t, http.StatusOK, ev.doJSON(http.MethodGet, "/categories", nil).Code)
	mu.Lock()
	require.Equal(t, 1, listCalls)
	mu.Unlock()

	rec := ev.doJSON(http.MethodPost, "/categories", transport.CategoryPayload{Name: "Soups", Slug: "soups", SortOrder: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return listCalls >= 2
	}, time.Second, time.Millisecond, "create must trigger a refetch of the collection")

	rec = ev.doJSON(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Soups", got[0].Name)
}

func TestUpdateOrderStatusAllowsAnyTransition(t *testing.T) {
	t.Parallel()

	mux := authedMux()
	mux.HandleFunc("/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		var req transport.StatusPayload
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(models.Order{ID: "o1", Status: req.Status})
	})
	ev := newEnv(t, mux)

	// NEW straight to DONE, skipping IN_PROGRESS, is allowed
	rec := ev.doJSON(http.MethodPatch, "/orders/o1/status", transport.StatusPayload{Status: models.OrderStatusDone})
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.OrderStatusDone, got.Status)
}

func TestUpdateOrderStatusRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	var patched bool
	mux := authedMux()
	mux.HandleFunc("/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		patched = true
	})
	ev := newEnv(t, mux)

	rec := ev.doJSON(http.MethodPatch, "/orders/o1/status", map[string]string{"status": "SHIPPED"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, patched)
}

func TestListCategoriesResolvesRelativeImages(t *testing.T) {
	t.Parallel()

	img := "/uploads/soup.png"
	mux := authedMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Category{{ID: "c1", Name: "Soups", Slug: "soups", Image: &img}})
	})
	ev := newEnv(t, mux)

	rec := ev.doJSON(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Image)
	assert.Equal(t, "http://assets.local/uploads/soup.png", *got[0].Image)
}

func TestBackend401MidSessionClearsStateAndRedirects(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	sessionValid := true
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ok := sessionValid
		mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.Admin{ID: "a1", Email: "admin@example.com"})
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ok := sessionValid
		mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Category{})
	})
	ev := newEnv(t, mux)

	require.Equal(t, http.StatusOK, ev.doJSON(http.MethodGet, "/categories", nil).Code)

	// the upstream session dies; the next read's 401 resets everything
	mu.Lock()
	sessionValid = false
	mu.Unlock()
	ev.cache.Clear()

	rec := ev.doJSON(http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}
