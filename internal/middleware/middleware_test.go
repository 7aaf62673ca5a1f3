package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/posts", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func get(r http.Handler, path, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIPRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)
	r := newEngine(IPRateLimitMiddleware(limiter, "/api/health"))

	assert.Equal(t, http.StatusOK, get(r, "/api/posts", "10.0.0.1:1234", nil).Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/posts", "10.0.0.1:1234", nil).Code)

	w := get(r, "/api/posts", "10.0.0.1:1234", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too_many_requests","message":"rate limit exceeded, please try again in a few seconds"}`, w.Body.String())

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, get(r, "/api/posts", "10.0.0.2:1234", nil).Code)

	// health checks are never limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/api/health", "10.0.0.1:1234", nil).Code)
	}

	assert.Equal(t, 2, limiter.Len())
}

func TestIPRateLimiter_GetLimiterReusesBucket(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	first := limiter.GetLimiter("192.168.1.1")
	second := limiter.GetLimiter("192.168.1.1")

	assert.Same(t, first, second)
	assert.Equal(t, 1, limiter.Len())
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, "/api/posts", "10.0.0.1:1234", nil)
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Len(t, generated, 36)

	w = get(r, "/api/posts", "10.0.0.1:1234", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())

	w := get(r, "/panic", "10.0.0.1:1234", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_server_error","message":"internal server error"}`, w.Body.String())
}

func TestAccessLogFormatter(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(RequestID(), gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: AccessLogFormatter,
		Output:    &buf,
	}))

	get(r, "/api/posts", "10.0.0.1:1234", http.Header{RequestIDHeader: {"req-1"}})

	line := buf.String()
	assert.Contains(t, line, "200")
	assert.Contains(t, line, `"/api/posts"`)
	assert.Contains(t, line, "req-1")
}
