package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"aurevo-menu/auth"
	"aurevo-menu/session"
	"aurevo-menu/views"

	"github.com/gin-gonic/gin"
)

// Inline messages shown on the login and signup forms.
const (
	msgMissingFields      = "Please enter a username and password"
	msgInvalidCredentials = "Invalid username or password"
	msgUsernameTaken      = "Username already exists"
	msgSomethingWrong     = "Something went wrong, please try again"
)

// CredentialsForm is the body of the login and signup forms.
type CredentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginPage shows the login form.
func (h *Handlers) LoginPage(c *gin.Context) {
	if h.sessions.State(c) == session.Authenticated {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	render(c, http.StatusOK, views.LoginPage("", ""))
}

// Login checks the submitted credentials and starts a session.
func (h *Handlers) Login(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, views.LoginPage(msgMissingFields, form.Username))
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		msg := msgInvalidCredentials
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
			msg = msgSomethingWrong
		}
		render(c, http.StatusOK, views.LoginPage(msg, form.Username))
		return
	}

	if err := h.sessions.Login(c, user); err != nil {
		h.logger.Error("start session", slog.String("error", err.Error()))
		render(c, http.StatusOK, views.LoginPage(msgSomethingWrong, form.Username))
		return
	}

	h.logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	c.Redirect(http.StatusFound, "/home")
}

// SignupPage shows the signup form.
func (h *Handlers) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, views.SignupPage("", ""))
}

// Signup creates an account and sends the user to the login page.
func (h *Handlers) Signup(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, views.SignupPage(msgMissingFields, form.Username))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			msg = msgUsernameTaken
		case errors.Is(err, auth.ErrInvalidInput):
			msg = msgMissingFields
		default:
			h.logger.Error("signup failed", slog.String("error", err.Error()))
			msg = msgSomethingWrong
		}
		render(c, http.StatusOK, views.SignupPage(msg, form.Username))
		return
	}

	h.logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.Redirect(http.StatusFound, "/login")
}

// Logout ends the session.
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.logger.Warn("end session", slog.String("error", err.Error()))
	}
	c.Redirect(http.StatusFound, "/login")
}
