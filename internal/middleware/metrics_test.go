package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tennis-rally-api/internal/metrics"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func setupMetricsRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(m))
	return router
}

// Every request outside the probe endpoints increments the counter of its status class by one
func TestProperty_HTTPRequestMetricsIncrement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("request counter increments per request", prop.ForAll(
		func(statusCode int) bool {
			m := newTestMetrics()
			router := setupMetricsRouter(m)
			router.GET("/api/events/:eventId", func(c *gin.Context) {
				c.Status(statusCode)
			})

			for i := 0; i < 2; i++ {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events/7", nil))
				if w.Code != statusCode {
					return false
				}
			}

			class := map[int]string{2: "2xx", 3: "3xx", 4: "4xx", 5: "5xx"}[statusCode/100]
			got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/events/:eventId", class))
			return got == 2
		},
		gen.IntRange(200, 599),
	))

	properties.TestingRun(t)
}

func TestMetricsMiddleware_ExcludedEndpoints(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)
	for _, path := range []string{"/health", "/ready", "/metrics"} {
		router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 0, testutil.CollectAndCount(m.HTTPRequestsTotal))
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	m := newTestMetrics()
	router := setupMetricsRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nowhere/123", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "4xx")))
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	router := setupMetricsRouter(nil)
	router.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
