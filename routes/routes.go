package routes

import (
	"log/slog"
	"os"

	"aurevo-menu/handlers"
	"aurevo-menu/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every route on r. staticDir is served under /static
// when it exists.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, gate *middleware.Gate, staticDir string) {
	// ── Public routes ──────────────────────────────────────────────
	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	r.GET("/logout", h.Logout)

	if info, err := os.Stat(staticDir); staticDir != "" && err == nil && info.IsDir() {
		r.Static("/static", staticDir)
	}

	// ── Signed-in routes ───────────────────────────────────────────
	r.GET("/home", gate.Protect(h.Home))
	r.GET("/payment", gate.Protect(h.Payment))

	api := r.Group("/api")
	{
		api.GET("/menu", gate.Protect(h.GetMenu))
		api.GET("/search", gate.Protect(h.SearchMenu))
	}
}

// Options configures the engine built by NewRouter.
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	StaticDir      string
}

// NewRouter builds the gin engine with the standard middleware stack and all routes.
func NewRouter(h *handlers.Handlers, gate *middleware.Gate, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.CORS(opts.AllowedOrigins))
	SetupRoutes(r, h, gate, opts.StaticDir)
	return r
}
