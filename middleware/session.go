package middleware

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "storefront_session"

	sessionContextKey = "session_id"
	sessionTTL        = 30 * 24 * time.Hour
)

// Session resolves the caller's opaque session identifier from a signed
// cookie, issuing a fresh one when the cookie is absent, expired, or
// tampered with. Carts are keyed by this identifier.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if sid, ok := parseSessionToken(raw); ok {
				c.Set(sessionContextKey, sid)
				c.Next()
				return
			}
		}

		sid := uuid.NewString()
		token, err := issueSessionToken(sid)
		if err == nil {
			c.SetCookie(SessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
		}
		c.Set(sessionContextKey, sid)
		c.Next()
	}
}

// SessionID returns the session identifier placed by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

func issueSessionToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func parseSessionToken(raw string) (string, bool) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
