package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"aurevo-menu/menu"
	"aurevo-menu/models"
	"aurevo-menu/session"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// AuthService is the credential flow the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	menu     *menu.Store
	auth     AuthService
	sessions *session.Manager
	logger   *slog.Logger
}

// New creates a new Handlers instance
func New(menuStore *menu.Store, auth AuthService, sessions *session.Manager, logger *slog.Logger) *Handlers {
	return &Handlers{
		menu:     menuStore,
		auth:     auth,
		sessions: sessions,
		logger:   logger,
	}
}

// Index sends signed-in users to the menu and everyone else to the login page.
func (h *Handlers) Index(c *gin.Context) {
	if h.sessions.State(c) == session.Authenticated {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Aurevo Menu",
	})
}

// render renders a templ component into a buffer before writing the response.
func render(c *gin.Context, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(c.Request.Context(), &buf); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
