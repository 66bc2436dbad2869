package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"aurevo-menu/auth"
	"aurevo-menu/menu"
	"aurevo-menu/models"
	"aurevo-menu/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAuthService struct {
	registerFunc     func(ctx context.Context, username, password string) (*models.User, error)
	authenticateFunc func(ctx context.Context, username, password string) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, username, password)
	}
	return &models.User{ID: 1, Username: username}, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, username, password)
	}
	return &models.User{ID: 1, Username: username}, nil
}

func newTestHandlers(svc AuthService) (*Handlers, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return New(menu.NewStore(""), svc, session.NewManager("secret", "session", false), logger), &logs
}

func postForm(h gin.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	h(c)
	// A redirect without a body leaves the status buffered in gin's writer.
	c.Writer.WriteHeaderNow()
	return w
}

func TestLogin_StoreFailureShowsGenericMessage(t *testing.T) {
	svc := &mockAuthService{
		authenticateFunc: func(context.Context, string, string) (*models.User, error) {
			return nil, errors.New("sqlite: disk I/O error")
		},
	}
	h, logs := newTestHandlers(svc)

	w := postForm(h.Login, url.Values{"username": {"chef"}, "password": {"pw"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgSomethingWrong)
	assert.NotContains(t, w.Body.String(), "disk I/O")
	assert.Contains(t, logs.String(), "disk I/O")
}

func TestLogin_SuccessSetsCookieAndRedirects(t *testing.T) {
	h, _ := newTestHandlers(&mockAuthService{})

	w := postForm(h.Login, url.Values{"username": {"chef"}, "password": {"pw"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "session", w.Result().Cookies()[0].Name)
}

func TestSignup_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"duplicate", auth.ErrUsernameTaken, msgUsernameTaken},
		{"wrapped duplicate", errors.Join(errors.New("ctx"), auth.ErrUsernameTaken), msgUsernameTaken},
		{"blank", auth.ErrInvalidInput, msgMissingFields},
		{"store failure", errors.New("UNIQUE constraint failed: users.username"), msgSomethingWrong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthService{
				registerFunc: func(context.Context, string, string) (*models.User, error) {
					return nil, tc.err
				},
			}
			h, _ := newTestHandlers(svc)

			w := postForm(h.Signup, url.Values{"username": {"chef"}, "password": {"pw"}})

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
			assert.NotContains(t, w.Body.String(), "UNIQUE constraint")
		})
	}
}

func TestSignup_SuccessRedirectsToLogin(t *testing.T) {
	var gotUser, gotPassword string
	svc := &mockAuthService{
		registerFunc: func(_ context.Context, username, password string) (*models.User, error) {
			gotUser, gotPassword = username, password
			return &models.User{ID: 5, Username: username}, nil
		},
	}
	h, _ := newTestHandlers(svc)

	w := postForm(h.Signup, url.Values{"username": {"chef"}, "password": {"pw"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "chef", gotUser)
	assert.Equal(t, "pw", gotPassword)
}

func TestSignup_MissingFieldsSkipsService(t *testing.T) {
	called := false
	svc := &mockAuthService{
		registerFunc: func(context.Context, string, string) (*models.User, error) {
			called = true
			return nil, nil
		},
	}
	h, _ := newTestHandlers(svc)

	w := postForm(h.Signup, url.Values{"username": {"chef"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgMissingFields)
	assert.False(t, called)
}
