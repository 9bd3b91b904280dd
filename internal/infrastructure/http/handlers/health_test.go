package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func ready(t *testing.T, h echo.HandlerFunc) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_NothingConfigured(t *testing.T) {
	rec, body := ready(t, NewHealthDependenciesHandler(nil, nil).Readiness)
	if rec.Code != http.StatusOK || body.Status != "ok" || len(body.Dependencies) != 0 {
		t.Fatalf("unexpected readiness %d %+v", rec.Code, body)
	}
}

func TestReadiness_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	h := NewHealthDependenciesHandler(nil, rdb)

	rec, body := ready(t, h.Readiness)
	if rec.Code != http.StatusOK || body.Dependencies["redis"].Status != "ok" {
		t.Fatalf("unexpected readiness %d %+v", rec.Code, body)
	}

	mr.Close()
	rec, body = ready(t, h.Readiness)
	if rec.Code != http.StatusServiceUnavailable || body.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", rec.Code, body)
	}
	if body.Dependencies["redis"].Error == "" {
		t.Fatalf("expected redis error detail")
	}
}
