package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafebooking/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2, zap.NewNop()))

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected status %d, got %d", i+1, want, rec.Code)
		}
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for new client, got %d", rec.Code)
	}
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	secret := "test-secret"
	adminToken, err := utils.GenerateAdminToken([]byte(secret), "owner", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	otherToken, _ := utils.GenerateAdminToken([]byte("other-secret"), "owner", time.Hour)
	expired, _ := utils.GenerateAdminToken([]byte(secret), "owner", -time.Hour)

	cases := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"disabled guard", "", "", http.StatusOK},
		{"missing header", secret, "", http.StatusUnauthorized},
		{"wrong scheme", secret, "Basic abc", http.StatusUnauthorized},
		{"wrong signature", secret, "Bearer " + otherToken, http.StatusUnauthorized},
		{"expired", secret, "Bearer " + expired, http.StatusUnauthorized},
		{"valid", secret, "Bearer " + adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(JWTAuthAdminMiddleware(tc.secret))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger(zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestRateLimiterStoreEvictsIdleVisitors(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(10)
	store.now = func() time.Time { return now }

	store.getLimiter("203.0.113.1")
	store.getLimiter("203.0.113.2")

	now = now.Add(5 * time.Minute)
	store.getLimiter("203.0.113.2")

	now = now.Add(visitorIdleTTL - time.Minute)
	store.getLimiter("203.0.113.3")

	if _, ok := store.visitors["203.0.113.1"]; ok {
		t.Fatalf("expected idle visitor to be evicted")
	}
	if _, ok := store.visitors["203.0.113.2"]; !ok {
		t.Fatalf("expected recently seen visitor to be kept")
	}
	if len(store.visitors) != 2 {
		t.Fatalf("expected 2 visitors, got %d", len(store.visitors))
	}
}

func TestRateLimiterStoreKeepsBucketAcrossSweeps(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(1)
	store.now = func() time.Time { return now }

	if !store.getLimiter("198.51.100.9").Allow() {
		t.Fatalf("expected first request to pass")
	}
	now = now.Add(sweepInterval)
	if store.getLimiter("198.51.100.9").Allow() {
		t.Fatalf("active visitor must keep its spent bucket after a sweep")
	}
}
