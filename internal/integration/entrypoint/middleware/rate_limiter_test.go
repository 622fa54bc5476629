package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestRouter(t *testing.T, limiter *RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":51234"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter(t *testing.T) {
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mini.Close()

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	t.Run("allows requests within the limit", func(t *testing.T) {
		mini.FlushAll()
		router := newTestRouter(t, NewRateLimiterWithConfig(client, 3, time.Minute))

		for i := 0; i < 3; i++ {
			if code := doRequest(router, "10.0.0.1"); code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, code)
			}
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		mini.FlushAll()
		router := newTestRouter(t, NewRateLimiterWithConfig(client, 3, time.Minute))

		for i := 0; i < 3; i++ {
			doRequest(router, "10.0.0.2")
		}
		if code := doRequest(router, "10.0.0.2"); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		mini.FlushAll()
		router := newTestRouter(t, NewRateLimiterWithConfig(client, 1, time.Minute))

		if code := doRequest(router, "10.0.0.3"); code != http.StatusOK {
			t.Fatalf("expected 200 for first client, got %d", code)
		}
		if code := doRequest(router, "10.0.0.4"); code != http.StatusOK {
			t.Fatalf("expected 200 for second client, got %d", code)
		}
		if code := doRequest(router, "10.0.0.3"); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 for repeat client, got %d", code)
		}
	})

	t.Run("resets after the window expires", func(t *testing.T) {
		mini.FlushAll()
		router := newTestRouter(t, NewRateLimiterWithConfig(client, 1, time.Minute))

		doRequest(router, "10.0.0.5")
		if code := doRequest(router, "10.0.0.5"); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 before window expiry, got %d", code)
		}

		mini.FastForward(time.Minute + time.Second)

		if code := doRequest(router, "10.0.0.5"); code != http.StatusOK {
			t.Fatalf("expected 200 after window expiry, got %d", code)
		}
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		downClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		router := newTestRouter(t, NewRateLimiterWithConfig(downClient, 1, time.Minute))

		for i := 0; i < 3; i++ {
			if code := doRequest(router, "10.0.0.6"); code != http.StatusOK {
				t.Fatalf("request %d: expected 200 with redis down, got %d", i+1, code)
			}
		}
	})
}
