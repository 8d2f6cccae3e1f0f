package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agromap-backend/pkg/cache"
	"agromap-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(&container.Container{Cache: cache.NewMemoryCache()})
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "disconnected", body.Services["database"])
	assert.Equal(t, "in-memory", body.Services["cache"])
	assert.Equal(t, "disconnected", body.Services["storage"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/profile"},
		{http.MethodGet, "/api/v1/admin/stats"},
		{http.MethodGet, "/api/v1/admin/products/export"},
		{http.MethodGet, "/api/v1/markets/mine"},
		{http.MethodGet, "/api/v1/products/mine"},
		{http.MethodPost, "/api/v1/markets"},
		{http.MethodDelete, "/api/v1/categories/6f1c3f52-6f1e-4a59-9a35-1f8b0f3d2c11"},
		{http.MethodPost, "/api/v1/comments"},
		{http.MethodPost, "/api/v1/comments/6f1c3f52-6f1e-4a59-9a35-1f8b0f3d2c11/like"},
		{http.MethodPost, "/api/v1/ratings"},
		{http.MethodGet, "/api/v1/ratings/by-product/6f1c3f52-6f1e-4a59-9a35-1f8b0f3d2c11"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
