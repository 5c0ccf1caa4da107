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

	"soccermass/internal/services"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.POST("/data-deletion", func(c *gin.Context) {
		session, _ := c.Get("session")
		handle, _ := c.Get("handle")
		c.JSON(http.StatusOK, gin.H{"session": session, "handle": handle})
	})
	r.POST("/signin", func(c *gin.Context) {
		c.String(http.StatusOK, "public")
	})
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicPathSkipsAuth(t *testing.T) {
	SetJWTKey("test-secret")
	r := protectedRouter()

	w := serve(r, httptest.NewRequest(http.MethodPost, "/signin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedPathRejectsMissingToken(t *testing.T) {
	SetJWTKey("test-secret")
	r := protectedRouter()

	w := serve(r, httptest.NewRequest(http.MethodPost, "/data-deletion", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing or invalid credentials")
}

func TestProtectedPathAcceptsCookieToken(t *testing.T) {
	SetJWTKey("test-secret")
	r := protectedRouter()

	token, err := services.NewTokenService("test-secret").SignSession("sess-1", "Alice", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/data-deletion", nil)
	req.AddCookie(&http.Cookie{Name: SSIDCookie, Value: token})
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"sess-1"`)
	assert.Contains(t, w.Body.String(), `"handle":"alice"`)
}

func TestProtectedPathAcceptsBearerToken(t *testing.T) {
	SetJWTKey("test-secret")
	r := protectedRouter()

	token, err := services.NewTokenService("test-secret").SignSession("sess-2", "Alice", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/data-deletion", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"sess-2"`)
}

func TestProtectedPathRejectsForgedToken(t *testing.T) {
	SetJWTKey("test-secret")
	r := protectedRouter()

	token, err := services.NewTokenService("wrong-secret").SignSession("sess-3", "Mallory", "mallory")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/data-deletion", nil)
	req.AddCookie(&http.Cookie{Name: SSIDCookie, Value: token})
	w := serve(r, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestProtectedPathRejectsExpiredToken(t *testing.T) {
	SetJWTKey("test-secret")
	r := protectedRouter()

	claims := &services.SessionClaims{
		Session: "sess-4",
		Handle:  "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/data-deletion", nil)
	req.AddCookie(&http.Cookie{Name: SSIDCookie, Value: token})
	w := serve(r, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreflightBypassesAuth(t *testing.T) {
	SetJWTKey("test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.OPTIONS("/data-deletion", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodOptions, "/data-deletion", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
