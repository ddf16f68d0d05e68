package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studyroom-seat-booking/internal/config"
	"github.com/iliyamo/studyroom-seat-booking/internal/utils"
)

func adminEcho(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/admin", JWTAuth(secret), RequireRole(utils.RoleAdmin))
	g.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, AdminName(c))
	})
	return e
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	adminEcho("s").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"missing bearer token"}`, rec.Body.String())
}

func TestJWTAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	adminEcho("s").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthAcceptsAdminToken(t *testing.T) {
	tok, err := utils.NewAdminToken("s", "owner", 10)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	adminEcho("s").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner", rec.Body.String())
}

func TestRequireRoleForbidden(t *testing.T) {
	e := echo.New()
	h := RequireRole(utils.RoleAdmin)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(CtxRole, "CUSTOMER")

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/bookings")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /api/bookings", rateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.1", rateKey(cfg, c))
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
	e := echo.New()
	called := false
	next := func(c echo.Context) error { called = true; return nil }
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	require.NoError(t, NewRedisCache(config.CacheConfig{Enabled: true}, nil)(next)(c))
	assert.True(t, called)

	called = false
	require.NoError(t, NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil, nil)(next)(c))
	assert.True(t, called)
}

func TestCacheKeyDependsOnQuery(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	c1 := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/seats/availability?start_date=2024-01-01", nil), httptest.NewRecorder())
	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/seats/availability?start_date=2024-02-01", nil), httptest.NewRecorder())
	c1.SetPath("/api/seats/availability")
	c2.SetPath("/api/seats/availability")

	assert.NotEqual(t, cacheKey(cfg, c1), cacheKey(cfg, c2))
	assert.Contains(t, cacheKey(cfg, c1), "cache:")
}
