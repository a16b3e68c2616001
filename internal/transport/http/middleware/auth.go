package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errUnauthenticated = "unauthenticated"

// SessionCookie is the httpOnly cookie carrying the session token.
const SessionCookie = "token"

// SessionValidator turns a raw session token into a user ID.
type SessionValidator interface {
	Validate(raw string) (string, error)
}

// Session validates the session cookie and sets "userID" in the gin
// context. A missing, malformed, expired, or mis-signed token all produce
// the same 401.
func Session(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errUnauthenticated})
			return
		}

		userID, err := sessions.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errUnauthenticated})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
