package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"groupstays/internal/middleware"
	"groupstays/internal/pkg/request"
	"groupstays/internal/pkg/response"
)

type UpdateStatusRequest struct {
	BookingStatus Status `json:"bookingStatus" validate:"required"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /owner/bookings?limit=
func (h *Handler) List(c *gin.Context) {
	limit := request.IntQuery(c, "limit", DefaultLimit, 1, MaxLimit)
	out, err := h.service.ListForOwner(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// UpdateStatus handles PATCH /owner/bookings/:id
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req UpdateStatusRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), middleware.UserID(c), id, req.BookingStatus)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}

// Delete handles DELETE /owner/bookings/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true, "id": id})
}

func RegisterOwnerRoutes(r *gin.RouterGroup, h *Handler) {
	bookings := r.Group("/owner/bookings")
	{
		bookings.GET("", h.List)
		bookings.PATCH("/:id", h.UpdateStatus)
		bookings.DELETE("/:id", h.Delete)
	}
}
