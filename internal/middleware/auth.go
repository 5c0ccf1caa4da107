package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"soccermass/internal/services"
)

var jwtKey []byte

// SetJWTKey installs the signing secret from process configuration.
func SetJWTKey(secret string) {
	jwtKey = []byte(secret)
}

// SSIDCookie is the HTTP-only cookie carrying the signed session token.
const SSIDCookie = "SSID"

// public endpoints that never require a token
func isPublicPath(path string) bool {
	switch path {
	case "/", "/signup", "/verify-account", "/signin",
		"/reset-password-otp", "/reset-password",
		"/email-taken", "/persist-user":
		return true
	}
	if strings.HasPrefix(path, "/swagger") ||
		strings.HasPrefix(path, "/healthz") {
		return true
	}
	return false
}

// tokenFromRequest prefers the SSID cookie, falling back to a bearer header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SSIDCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid credentials"})
			return
		}

		claims := &services.SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			// HMAC only
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		const leeway = 2 * time.Minute
		now := time.Now().Add(-leeway)
		if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("session", claims.Session)
		c.Set("handle", claims.Handle)

		c.Next()
	}
}
