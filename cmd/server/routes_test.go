package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"keygate.backend/internal/interfaces/http/handlers"
	"keygate.backend/internal/usecases"
)

func TestRegisterHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "keygate-backend" {
		t.Fatalf("unexpected health payload: %+v", body)
	}
}

func TestRegisterMetricsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerMetricsRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterAPIV1Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	passThrough := func(c *gin.Context) { c.Next() }
	registerAPIV1Routes(r, routeDeps{
		personalKeyHandler:  handlers.NewPersonalKeyHandler(usecases.NewPersonalKeyUsecase(nil)),
		usageHandler:        handlers.NewUsageHandler(usecases.NewUsageUsecase(nil, nil)),
		authMiddleware:      passThrough,
		rateLimitMiddleware: passThrough,
	})

	want := map[string]bool{
		"POST /api/v1/admin":                      false,
		"GET /api/v1/admin/:userID":               false,
		"GET /api/v1/admin/:userID/:keyID":        false,
		"PUT /api/v1/admin/:userID/:keyID":        false,
		"DELETE /api/v1/admin/:userID/:keyID":     false,
		"POST /api/v1/admin/:userID/:keyID/reset": false,
		"GET /api/v1/admin/:userID/:keyID/logs":   false,
		"GET /api/v1/admin/:userID/:keyID/stats":  false,
	}
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Fatalf("route not registered: %s", key)
		}
	}
}
