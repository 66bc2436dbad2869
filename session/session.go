// Package session carries the logged-in identity in a signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"aurevo-menu/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Identity is the authenticated user a request acts for.
type Identity struct {
	UserID   uint
	Username string
}

// Claims is the signed payload of the session cookie. It carries no expiry:
// a session lasts until logout or until the browser drops the cookie.
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager signs, reads and clears session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	secure     bool
}

// NewManager creates a Manager. secure marks cookies HTTPS-only.
func NewManager(secret, cookieName string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), cookieName: cookieName, secure: secure}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Sign produces a token for id.
func (m *Manager) Sign(id Identity) (string, error) {
	claims := Claims{
		UserID:   id.UserID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(id.UserID), 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a token and returns the identity it carries.
func (m *Manager) Parse(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.UserID == 0 {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// Identity resolves the identity of the request, if any.
func (m *Manager) Identity(c *gin.Context) (Identity, bool) {
	tokenString, err := c.Cookie(m.cookieName)
	if err != nil || tokenString == "" {
		return Identity{}, false
	}
	id, err := m.Parse(tokenString)
	if err != nil {
		return Identity{}, false
	}
	return id, true
}

// State reports the lifecycle state of the request.
func (m *Manager) State(c *gin.Context) State {
	if _, ok := m.Identity(c); ok {
		return Authenticated
	}
	return Anonymous
}

// Login moves the browser to Authenticated as user.
func (m *Manager) Login(c *gin.Context, user *models.User) error {
	to, err := Next(m.State(c), EventLogin)
	if err != nil {
		return err
	}
	return m.apply(c, to, Identity{UserID: user.ID, Username: user.Username})
}

// Logout moves the browser to Anonymous.
func (m *Manager) Logout(c *gin.Context) error {
	to, err := Next(m.State(c), EventLogout)
	if err != nil {
		return err
	}
	return m.apply(c, to, Identity{})
}

func (m *Manager) apply(c *gin.Context, to State, id Identity) error {
	c.SetSameSite(http.SameSiteLaxMode)
	switch to {
	case Authenticated:
		token, err := m.Sign(id)
		if err != nil {
			return fmt.Errorf("sign session: %w", err)
		}
		// MaxAge 0 keeps it a browser-session cookie.
		c.SetCookie(m.cookieName, token, 0, "/", "", m.secure, true)
	case Anonymous:
		c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	}
	return nil
}
