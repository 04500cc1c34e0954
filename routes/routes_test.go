package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exoticworld/database"
	"exoticworld/middleware"
	"exoticworld/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupRouter(t *testing.T, limiter *middleware.RateLimiter) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, db, limiter)
	return r, db
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	r, db := setupRouter(t, nil)
	sqlDB, _ := db.DB()
	sqlDB.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestRoutesMounted(t *testing.T) {
	r, db := setupRouter(t, nil)
	p := models.Product{Name: "Gecko", Price: decimal.NewFromInt(20)}
	db.Create(&p)

	cases := []struct {
		method, path string
		want         int
	}{
		{"GET", "/api/v1/productos", http.StatusOK},
		{"GET", fmt.Sprintf("/api/v1/productos/%d", p.ID), http.StatusOK},
		{"GET", "/api/v1/productos/buscar/nombre?nombre=gec", http.StatusOK},
		{"POST", fmt.Sprintf("/api/v1/carrito/usuario/ana/agregar?productoId=%d&cantidad=1", p.ID), http.StatusOK},
		{"GET", "/api/v1/carrito/usuario/ana", http.StatusOK},
		{"GET", "/api/v1/carrito/usuario/ana/items", http.StatusOK},
		{"GET", "/api/v1/carrito/usuario/ana/total", http.StatusOK},
		{"PUT", fmt.Sprintf("/api/v1/carrito/usuario/ana/actualizar-cantidad?productoId=%d&cantidad=3", p.ID), http.StatusOK},
		{"POST", fmt.Sprintf("/api/v1/carrito/usuario/ana/decrementar?productoId=%d", p.ID), http.StatusOK},
		{"DELETE", fmt.Sprintf("/api/v1/carrito/usuario/ana/eliminar-item?productoId=%d", p.ID), http.StatusNoContent},
		{"DELETE", "/api/v1/carrito/usuario/ana/vaciar", http.StatusNoContent},
		{"DELETE", fmt.Sprintf("/api/v1/productos/%d", p.ID), http.StatusNoContent},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d: %s", tc.method, tc.path, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestCartRoutesRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute, middleware.ByUserOrIP)
	defer limiter.Stop()
	r, _ := setupRouter(t, limiter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/carrito/usuario/ana/items", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/carrito/usuario/ana/items", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	// Catalog routes are not limited.
	for i := 0; i < 3; i++ {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/productos", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}
}
