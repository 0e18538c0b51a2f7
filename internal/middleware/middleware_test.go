package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, issuer), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
		wantBody   string
	}{
		{"valid token", func(t *testing.T) string {
			return "Bearer " + signedToken(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: "invoices", ExpiresAt: future})
		}, http.StatusOK, "user-1"},
		{"missing header", func(t *testing.T) string { return "" }, http.StatusUnauthorized, ""},
		{"wrong scheme", func(t *testing.T) string { return "Basic abc" }, http.StatusUnauthorized, ""},
		{"expired", func(t *testing.T) string {
			return "Bearer " + signedToken(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: "invoices", ExpiresAt: past})
		}, http.StatusUnauthorized, ""},
		{"wrong issuer", func(t *testing.T) string {
			return "Bearer " + signedToken(t, jwt.RegisteredClaims{Subject: "user-1", Issuer: "other", ExpiresAt: future})
		}, http.StatusUnauthorized, ""},
		{"no subject", func(t *testing.T) string {
			return "Bearer " + signedToken(t, jwt.RegisteredClaims{Issuer: "invoices", ExpiresAt: future})
		}, http.StatusUnauthorized, ""},
	}

	r := newAuthRouter("invoices")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestStructuredLoggingMiddleware_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/", func(c *gin.Context) {
		assert.NotNil(t, GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(lim))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewRateLimiter("not-a-rate")
	assert.Error(t, err)
}
