package middleware

import (
	"net/http"

	"aurevo-menu/session"

	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// AuthedHandler is a handler that runs only for a resolved identity.
type AuthedHandler func(c *gin.Context, id session.Identity)

// Gate guards protected routes with the session cookie.
type Gate struct {
	sessions *session.Manager
}

// NewGate creates a Gate reading identities from sessions.
func NewGate(sessions *session.Manager) *Gate {
	return &Gate{sessions: sessions}
}

// Protect resolves the caller's identity once and hands it to h. Requests
// without a valid session, pages and JSON endpoints alike, are redirected to
// the login page.
func (g *Gate) Protect(h AuthedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := g.sessions.Identity(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set("userID", id.UserID)
		h(c, id)
	}
}

// GetUserID extracts the caller user ID recorded by Protect, for logging.
func GetUserID(c *gin.Context) (uint, bool) {
	val, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
