package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/config"
	"blog-api/internal/domains/post/repository"
	"blog-api/internal/infrastructure/database"
	"blog-api/internal/shared/middleware"
	"blog-api/pkg/container"
)

func newTestContainer(t *testing.T, basePath string) *container.Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.New(context.Background(), &config.Config{
		App:     config.AppConfig{Environment: "test", Version: "test", BasePath: basePath},
		Storage: config.StorageConfig{Driver: repository.DriverMemory},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	return c
}

func TestHealthEndpoint(t *testing.T) {
	router := SetupRouter(newTestContainer(t, ""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["storage"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestHealthEndpointDegraded(t *testing.T) {
	c := newTestContainer(t, "")
	// a postgres container whose pool never connected
	c.Config.Storage.Driver = repository.DriverPostgres
	c.DB = database.NewPostgresDB(&database.DBConfig{Host: "localhost", Port: 5432})

	w := httptest.NewRecorder()
	SetupRouter(c).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "postgres", body["storage"])
}

func TestRoutesMountUnderBasePath(t *testing.T) {
	router := SetupRouter(newTestContainer(t, "/api/v1"))

	body := `{"title":"t","content":"c","author":{"firstName":"A","lastName":"B"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/api/v1/posts/"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"route not found"}`, w.Body.String())
}
