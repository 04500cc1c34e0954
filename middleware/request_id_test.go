package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func setupRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return r
}

func TestRequestIDEchoesValidHeader(t *testing.T) {
	r := setupRequestIDRouter()
	id := uuid.NewString()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != id {
		t.Errorf("expected %s, got %s", id, got)
	}
	if w.Body.String() != id {
		t.Errorf("expected request id in context, got %s", w.Body.String())
	}
}

func TestRequestIDReplacesMissingOrInvalid(t *testing.T) {
	r := setupRequestIDRouter()

	for _, header := range []string{"", "not-a-uuid"} {
		req := httptest.NewRequest("GET", "/test", nil)
		if header != "" {
			req.Header.Set(RequestIDHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("header %q: expected generated uuid, got %q", header, got)
		}
	}
}
