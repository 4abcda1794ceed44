package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedify/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupRateLimitedRouter(requestsPerMinute, burst int) (*middleware.RateLimiter, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	limiter := middleware.NewRateLimiter(requestsPerMinute, burst, time.Minute)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return limiter, router
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	limiter, router := setupRateLimitedRouter(60, 3)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d: expected status %d, got %d", i, http.StatusOK, w.Code)
		}
	}
}

func TestRateLimiterBlocksOverBurst(t *testing.T) {
	limiter, router := setupRateLimitedRouter(60, 2)
	defer limiter.Stop()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be limited, got codes %v", codes)
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	limiter, router := setupRateLimitedRouter(60, 1)
	defer limiter.Stop()

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	// A different address gets its own bucket.
	req, _ = http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d for second client, got %d", http.StatusOK, w.Code)
	}
}
