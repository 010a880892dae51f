package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/middleware"
	"groupstays/internal/modules/dashboard"
	"groupstays/internal/modules/wizard"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
)

// PortalConfig sizes the in-memory session and dashboard stores.
type PortalConfig struct {
	SessionTTL       time.Duration
	SessionCacheSize int64
	CORSOrigins      []string
}

// Portal is the wired owner portal.
type Portal struct {
	Router    *gin.Engine
	Sessions  *wizard.Store
	Dashboard *dashboard.Store
}

// NewPortal wires the wizard and dashboard against the Property API. queue
// may be nil, in which case failed plan marks are only logged.
func NewPortal(cfg PortalConfig, client *propertyapi.Client, queue wizard.PlanMarkQueue, jwtService *jwt.Service, log *logger.Logger) *Portal {
	sessions := wizard.NewStore(cfg.SessionTTL, cfg.SessionCacheSize)
	wizardService := wizard.NewService(sessions, wizard.NewPipeline(client, queue, log), client, log)

	states := dashboard.NewStore(cfg.SessionTTL, cfg.SessionCacheSize)
	dashboardService := dashboard.NewService(states, dashboard.NewRouter(client, log), log)

	r := gin.New()
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = 32 << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	portal := r.Group("/portal", middleware.JWTAuth(jwtService), middleware.OwnerOnly())
	wizard.NewHandler(wizardService).RegisterRoutes(portal)
	dashboard.NewHandler(dashboardService).RegisterRoutes(portal)

	return &Portal{Router: r, Sessions: sessions, Dashboard: states}
}

// Close stops the cache janitors.
func (p *Portal) Close() {
	p.Sessions.Stop()
	p.Dashboard.Stop()
}
