package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealdesk-backend/internal/deals"
	"dealdesk-backend/internal/services/health"
	"dealdesk-backend/internal/shared/config"
	"dealdesk-backend/internal/shared/metrics"
	"dealdesk-backend/internal/shared/server/middleware"
	"dealdesk-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers and services the router wires up.
type RouterDeps struct {
	Config      config.Config
	DealHandler *deals.Handler
	Health      *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor:     rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"SUBMIT":  {Rate: 0.5, Burst: 5},
				"POLLING": {Rate: 5, Burst: 20},
			},
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	if deps.DealHandler != nil {
		deps.DealHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/deals" {
		return "SUBMIT"
	}
	if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/deals/:id" {
		return "POLLING"
	}
	return "DEFAULT"
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
