package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/config"
)

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRouterServesHealthMetricsAndNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: config.Config{CORSAllowOrigin: []string{"http://localhost:5173"}}})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"ok":true`) {
		t.Fatalf("health: got %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "# TYPE") {
		t.Fatalf("metrics: got %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if resp.Code != http.StatusNotFound || resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("no route: got %d headers %v", resp.Code, resp.Header())
	}
}
