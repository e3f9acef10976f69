package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/render"
	"resume-builder/internal/resume"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/users"
)

// RouterDeps lists the handlers and collaborators mounted by NewRouter.
type RouterDeps struct {
	Config        config.Config
	Tokens        middleware.TokenVerifier
	Health        *health.Service
	UsersHandler  *users.Handler
	ResumeHandler *resume.Handler
	RenderHandler *render.Handler
	Limiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identify(deps.Tokens),
	)
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		st := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})

	owner := middleware.RequireOwner(deps.Config.AuthMode)
	limit := middleware.RateLimit(middleware.RateLimitConfig{
		Group:   middleware.GroupAuth,
		Limiter: deps.Limiter,
		Rules: map[string]middleware.RateLimitRule{
			middleware.GroupAuth: {Rate: deps.Config.AuthRateLimitRPS, Burst: deps.Config.AuthRateLimitBurst},
		},
	})

	usersGroup := api.Group("/users")
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(usersGroup, limit)
		deps.UsersHandler.RegisterMeRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(usersGroup, owner)
		deps.ResumeHandler.RegisterAssetRoutes(r)
	}
	if deps.RenderHandler != nil {
		deps.RenderHandler.RegisterRoutes(usersGroup, owner)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
