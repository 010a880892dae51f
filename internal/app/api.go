// Package app assembles the HTTP services from their domain packages.
package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"groupstays/internal/database"
	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/payment"
	"groupstays/internal/domain/plan"
	"groupstays/internal/domain/property"
	"groupstays/internal/domain/realtime"
	"groupstays/internal/domain/upload"
	"groupstays/internal/middleware"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
)

// APIConfig is what the Property API needs beyond its database.
type APIConfig struct {
	UploadDir         string
	UploadURLBase     string
	InternalTokenHash string
	CORSOrigins       []string
}

// API is the wired Property API.
type API struct {
	Router *gin.Engine
	Hub    *realtime.Hub
	Plans  *plan.Service
}

// APIModels lists every table the Property API owns.
func APIModels() []any {
	return []any{
		&property.Property{},
		&property.CalendarEntry{},
		&booking.Booking{},
		&enquiry.Enquiry{},
		&payment.Record{},
		&plan.Plan{},
		&plan.Purchase{},
		&upload.Upload{},
	}
}

// Migrate creates the tables and seeds the plan catalogue.
func (a *API) Migrate(ctx context.Context, db *gorm.DB) error {
	if err := database.Migrate(db, APIModels()...); err != nil {
		return err
	}
	return a.Plans.SeedCatalog(ctx)
}

func NewAPI(cfg APIConfig, db *gorm.DB, jwtService *jwt.Service, log *logger.Logger) *API {
	hub := realtime.NewHub(log)

	bookingService := booking.NewService(booking.NewRepository(db), hub, log)
	propertyService := property.NewService(property.NewRepository(db), bookingService, hub, log)
	enquiryService := enquiry.NewService(enquiry.NewRepository(db))
	paymentService := payment.NewService(payment.NewRepository(db))
	planService := plan.NewService(plan.NewRepository(db), paymentService, log)
	uploadService := upload.NewService(upload.NewRepository(db), cfg.UploadDir, cfg.UploadURLBase)

	propertyHandler := property.NewHandler(propertyService)
	bookingHandler := booking.NewHandler(bookingService)
	enquiryHandler := enquiry.NewHandler(enquiryService)
	paymentHandler := payment.NewHandler(paymentService)
	planHandler := plan.NewHandler(planService)
	uploadHandler := upload.NewHandler(uploadService)
	realtimeHandler := realtime.NewHandler(hub, jwtService, cfg.CORSOrigins)

	r := gin.New()
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = 8 << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.UploadDir != "" && cfg.UploadURLBase != "" {
		r.Static(cfg.UploadURLBase, cfg.UploadDir)
	}

	api := r.Group("/api")
	{
		// public
		plan.RegisterPublicRoutes(api, planHandler)
		enquiry.RegisterPublicRoutes(api, enquiryHandler)
		realtime.RegisterRoutes(api, realtimeHandler)

		internal := api.Group("", middleware.InternalTokenAuth(cfg.InternalTokenHash, log))
		plan.RegisterInternalRoutes(internal, planHandler)

		authed := api.Group("", middleware.JWTAuth(jwtService))
		upload.RegisterRoutes(authed, uploadHandler)

		owner := authed.Group("", middleware.OwnerOnly())
		{
			property.RegisterOwnerRoutes(owner, propertyHandler, middleware.NewOwnershipChecker(propertyService))
			booking.RegisterOwnerRoutes(owner, bookingHandler)
			enquiry.RegisterOwnerRoutes(owner, enquiryHandler)
			payment.RegisterOwnerRoutes(owner, paymentHandler)
			plan.RegisterOwnerRoutes(owner, planHandler)
		}

		admin := authed.Group("", middleware.AdminOnly())
		property.RegisterAdminRoutes(admin, propertyHandler)
	}

	return &API{Router: r, Hub: hub, Plans: planService}
}
