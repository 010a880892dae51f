package property

import (
	"github.com/gin-gonic/gin"

	"groupstays/internal/middleware"
)

// RegisterOwnerRoutes expects r to already carry JWTAuth and OwnerOnly.
func RegisterOwnerRoutes(r *gin.RouterGroup, h *Handler, oc *middleware.OwnershipChecker) {
	byQuery := oc.CheckPropertyOwnership(middleware.FromQuery("id"))
	byParam := oc.CheckPropertyOwnership(middleware.FromParam("id"))

	r.POST("/properties", h.Create)
	r.GET("/properties", byQuery, h.Get)
	r.PUT("/properties", byQuery, h.Update)
	r.POST("/properties/submit", h.Submit)

	owner := r.Group("/owner/properties")
	{
		owner.GET("", h.ListMine)
		owner.DELETE("/:id", byParam, h.Delete)
		owner.GET("/:id/availability", byParam, h.Availability)
		owner.PUT("/:id/calendar", byParam, h.SetCalendar)
	}
}

// RegisterAdminRoutes expects r to already carry JWTAuth and AdminOnly.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	admin := r.Group("/admin/properties")
	{
		admin.GET("", h.AdminList)
		admin.POST("/:id/approve", h.Approve)
		admin.POST("/:id/reject", h.Reject)
	}
}
