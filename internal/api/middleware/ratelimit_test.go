package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func doLimitedRequest(t *testing.T, rl *RateLimiter, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/public/schedules?day_id=monday", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if err := doLimitedRequest(t, rl, "10.0.0.1"); err != nil {
			t.Fatalf("request %d within burst rejected: %v", i, err)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, time.Minute)
	defer rl.Stop()

	if err := doLimitedRequest(t, rl, "10.0.0.2"); err != nil {
		t.Fatalf("first request rejected: %v", err)
	}
	err := doLimitedRequest(t, rl, "10.0.0.2")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, time.Minute)
	defer rl.Stop()

	if err := doLimitedRequest(t, rl, "10.0.0.3"); err != nil {
		t.Fatalf("first client rejected: %v", err)
	}
	if err := doLimitedRequest(t, rl, "10.0.0.3"); err == nil {
		t.Fatalf("first client should be throttled")
	}
	if err := doLimitedRequest(t, rl, "10.0.0.4"); err != nil {
		t.Fatalf("second client throttled by first client's bucket: %v", err)
	}
}
