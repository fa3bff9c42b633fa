package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/shared/config"
)

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(Deps{Config: config.Config{AnalyzeRatePerSec: 1, AnalyzeRateBurst: 1}})

	for _, path := range []string{"/health", "/api/v1/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"healthy"`) {
			t.Fatalf("%s body = %s", path, rec.Body.String())
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(Deps{Config: config.Config{AnalyzeRatePerSec: 1, AnalyzeRateBurst: 1}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "report_started_total") {
		t.Fatalf("metrics body = %s", rec.Body.String())
	}
}
