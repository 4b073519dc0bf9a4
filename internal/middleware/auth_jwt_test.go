package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/middleware"
	"app/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// helper
// =====================

func newEchoContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_MissingHeaderIs401(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret")
	h := middleware.AuthJWT(issuer)(okHandler)

	c, rec := newEchoContext(t, "")
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NonBearerHeaderIs401(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret")
	h := middleware.AuthJWT(issuer)(okHandler)

	c, rec := newEchoContext(t, "Basic dXNlcjpwYXNz")
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_InvalidTokenIs403(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret")
	h := middleware.AuthJWT(issuer)(okHandler)

	c, rec := newEchoContext(t, "Bearer not-a-jwt")
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthJWT_ExpiredTokenIs403(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret")
	h := middleware.AuthJWT(issuer)(okHandler)

	//期限切れのaccess token
	signed, _, err := issuer.IssueAccess(1, false, time.Now().Add(-time.Hour))
	assert.NoError(t, err)

	c, rec := newEchoContext(t, "Bearer "+signed)
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthJWT_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret")
	h := middleware.AuthJWT(issuer)(okHandler)

	//refresh tokenをAuthorizationヘッダに入れても通らない
	signed, _, err := issuer.IssueRefresh(1, true, time.Now())
	assert.NoError(t, err)

	c, rec := newEchoContext(t, "Bearer "+signed)
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret")

	var gotUserID int64
	var gotSuperuser bool
	h := middleware.AuthJWT(issuer)(func(c echo.Context) error {
		gotUserID = c.Get(middleware.CtxUserIDKey).(int64)
		gotSuperuser = c.Get(middleware.CtxIsSuperuserKey).(bool)
		return c.NoContent(http.StatusOK)
	})

	signed, _, err := issuer.IssueAccess(42, true, time.Now())
	assert.NoError(t, err)

	c, rec := newEchoContext(t, "Bearer "+signed)
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.True(t, gotSuperuser)
}

// =====================
// SuperuserGuard
// =====================

func TestSuperuserGuard_NonSuperuserIs403(t *testing.T) {
	h := middleware.SuperuserGuard()(okHandler)

	c, rec := newEchoContext(t, "")
	c.Set(middleware.CtxIsSuperuserKey, false)

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSuperuserGuard_MissingContextIs401(t *testing.T) {
	h := middleware.SuperuserGuard()(okHandler)

	//AuthJWTを通っていない（contextにフラグが無い）
	c, rec := newEchoContext(t, "")

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSuperuserGuard_SuperuserPasses(t *testing.T) {
	h := middleware.SuperuserGuard()(okHandler)

	c, rec := newEchoContext(t, "")
	c.Set(middleware.CtxIsSuperuserKey, true)

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
