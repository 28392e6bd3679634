package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolens/capture/internal/domain"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "capacitor://localhost",
			allowedOrigins: []string{"capacitor://localhost"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "capacitor://localhost",
			allowedOrigins: []string{"http://localhost:*", "capacitor://localhost"},
			want:           true,
		},
		{
			name:           "match all",
			origin:         "https://app.example.com",
			allowedOrigins: []string{"*"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "capacitor://localhost",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantCORS   bool
	}{
		{"allowed origin - GET request", "capacitor://localhost", http.MethodGet, http.StatusOK, true},
		{"allowed origin - preflight", "capacitor://localhost", http.MethodOptions, http.StatusNoContent, true},
		{"disallowed origin", "http://evil.com", http.MethodGet, http.StatusOK, false},
		{"no origin header", "", http.MethodGet, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware([]string{"capacitor://localhost"}))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}

			corsHeader := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantCORS {
				if corsHeader != tt.origin {
					t.Errorf("Access-Control-Allow-Origin = %s, want %s", corsHeader, tt.origin)
				}
				if w.Header().Get("Access-Control-Allow-Headers") == "" {
					t.Errorf("Access-Control-Allow-Headers not set")
				}
			} else if corsHeader != "" {
				t.Errorf("Access-Control-Allow-Origin should not be set, got %s", corsHeader)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(requestIDHeader)
		if len(id) != 36 {
			t.Errorf("%s = %q, want a UUID", requestIDHeader, id)
		}
		if w.Body.String() != id {
			t.Errorf("context id = %q, want %q", w.Body.String(), id)
		}
	})

	t.Run("reuses client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(requestIDHeader, "client-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(requestIDHeader); got != "client-123" {
			t.Errorf("%s = %q, want client-123", requestIDHeader, got)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(60, 2))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := request("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", code)
	}
	if code := request("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", code)
	}
	if code := request("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	if code := request("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), domain.ErrRateLimited.Error()) {
		t.Errorf("body = %s, want %q", w.Body.String(), domain.ErrRateLimited.Error())
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", w.Header().Get("Retry-After"))
	}
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(60, 1)
	limiter.now = func() time.Time { return now }

	limiter.allow("10.0.0.1")
	now = now.Add(2 * visitorTTL)
	limiter.allow("10.0.0.2")

	if _, ok := limiter.visitors["10.0.0.1"]; ok {
		t.Errorf("idle visitor was not evicted")
	}
	if len(limiter.visitors) != 1 {
		t.Errorf("visitors = %d, want 1", len(limiter.visitors))
	}
}
