package middleware

import (
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

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, claims JWTClaims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func validClaims(role string) JWTClaims {
	return JWTClaims{
		UserID:   "u1",
		TenantID: "salon-a",
		Name:     "Vale",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func protectedEngine(roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/x", JWTAuth(testSecret), RequireRole(roles...), func(c *gin.Context) {
		cl := GetClaims(c)
		c.String(http.StatusOK, cl.TenantID+"/"+cl.Role)
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protectedEngine("owner", "admin")

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, signToken(t, validClaims("owner"), "other-secret")).Code)

	expired := validClaims("owner")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	assert.Equal(t, http.StatusUnauthorized, do(r, signToken(t, expired, testSecret)).Code)

	noTenant := validClaims("owner")
	noTenant.TenantID = ""
	assert.Equal(t, http.StatusUnauthorized, do(r, signToken(t, noTenant, testSecret)).Code)

	w := do(r, signToken(t, validClaims("admin"), testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "salon-a/admin", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := protectedEngine("owner")
	assert.Equal(t, http.StatusForbidden, do(r, signToken(t, validClaims("staff"), testSecret)).Code)
	assert.Equal(t, http.StatusOK, do(r, signToken(t, validClaims("owner"), testSecret)).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(), ErrorHandler())
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.GET("/err", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	for _, path := range []string{"/panic", "/err"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String(), path)
	}
}

func TestRateLimiter_Window(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(2, time.Minute, func() time.Time { return now })

	ok, _ := l.allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = l.allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = l.allow("1.1.1.1")
	assert.False(t, ok)
	ok, _ = l.allow("2.2.2.2")
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = l.allow("1.1.1.1")
	assert.True(t, ok)

	now = now.Add(10 * time.Minute)
	l.allow("3.3.3.3")
	assert.Len(t, l.entries, 1)
}

func TestRateLimiter_Handler(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	call := func(origins []string, method, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(CORS(origins))
		r.Any("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(method, "/x", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := call(nil, http.MethodGet, "https://anything.test")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	allowed := []string{"https://admin.salon.test"}
	w = call(allowed, http.MethodOptions, "https://admin.salon.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.salon.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = call(allowed, http.MethodGet, "https://evil.test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
