package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCronRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mw := NewCronAuthMiddleware(secret)
	router.POST("/internal/reports/quarterly", mw.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCronAuthMiddleware(t *testing.T) {
	t.Run("correct secret passes", func(t *testing.T) {
		router := newCronRouter("topsecret")

		req := httptest.NewRequest(http.MethodPost, "/internal/reports/quarterly", nil)
		req.Header.Set(CronSecretHeader, "topsecret")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		router := newCronRouter("topsecret")

		req := httptest.NewRequest(http.MethodPost, "/internal/reports/quarterly", nil)
		req.Header.Set(CronSecretHeader, "guess")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing secret is rejected", func(t *testing.T) {
		router := newCronRouter("topsecret")

		req := httptest.NewRequest(http.MethodPost, "/internal/reports/quarterly", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("empty configured secret rejects everything", func(t *testing.T) {
		router := newCronRouter("")

		req := httptest.NewRequest(http.MethodPost, "/internal/reports/quarterly", nil)
		req.Header.Set(CronSecretHeader, "")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
