package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goidm/identity-backend/internal/container"
	handlers "github.com/goidm/identity-backend/internal/interface/http"
	"github.com/goidm/identity-backend/internal/interface/middleware"
)

// Module wires the registration endpoints into routes.
// Public: POST /api/register, POST /api/activate, GET /api/healthz.
// All routes are registered under the given RouterGroup (usually /api).
type Module struct {
	Handler *handlers.UserHandler
}

func New(h *handlers.UserHandler) *Module {
	return &Module{Handler: h}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP
	activateLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/activate", activateLimiter, m.Handler.Activate)
	rg.GET("/healthz", m.Handler.Health)
}
