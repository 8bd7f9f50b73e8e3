package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error {
	return m.err
}

func TestNewHandler(t *testing.T) {
	handler := health.NewHandler(map[string]health.Checker{"store": &mockChecker{}})

	assert.NotNil(t, handler)
}

func TestHandler_Check(t *testing.T) {
	t.Run("returns ok when every dependency is healthy", func(t *testing.T) {
		handler := health.NewHandler(map[string]health.Checker{
			"postgres": &mockChecker{},
			"redis":    &mockChecker{},
		})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, map[string]string{"postgres": "healthy", "redis": "healthy"}, resp.Body.Checks)
	})

	t.Run("returns degraded when a dependency is unhealthy", func(t *testing.T) {
		handler := health.NewHandler(map[string]health.Checker{
			"postgres": &mockChecker{},
			"redis":    &mockChecker{err: errors.New("connection refused")},
		})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Checks["postgres"])
		assert.Equal(t, "unhealthy", resp.Body.Checks["redis"])
	})

	t.Run("returns ok with no dependencies", func(t *testing.T) {
		handler := health.NewHandler(nil)

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Empty(t, resp.Body.Checks)
	})

	t.Run("checks run with a deadline", func(t *testing.T) {
		var hasDeadline bool

		handler := health.NewHandler(map[string]health.Checker{
			"store": health.CheckerFunc(func(ctx context.Context) error {
				_, hasDeadline = ctx.Deadline()

				return nil
			}),
		})

		_, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.True(t, hasDeadline)
	})
}

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	health.RegisterRoutes(api, health.NewHandler(map[string]health.Checker{"memory": &mockChecker{}}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "healthy", body.Checks["memory"])
}

func TestRedisChecker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	t.Run("NewRedisChecker creates checker", func(t *testing.T) {
		checker := health.NewRedisChecker(client)

		assert.NotNil(t, checker)
	})

	t.Run("Ping returns nil when redis is available", func(t *testing.T) {
		checker := health.NewRedisChecker(client)

		err := checker.Ping(context.Background())

		assert.NoError(t, err)
	})
}
