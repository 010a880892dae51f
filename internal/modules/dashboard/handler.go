package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"groupstays/internal/middleware"
	"groupstays/internal/pkg/request"
	"groupstays/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	d := rg.Group("/dashboard")
	{
		d.GET("", h.Open)
		d.GET("/state", h.Current)
		d.GET("/views/:view", h.ShowView)
		d.POST("/filters", h.SetFilters)

		d.POST("/properties/:id/availability", h.ViewAvailability)
		d.POST("/properties/:id/submit", h.SubmitProperty)
		d.DELETE("/properties/:id", h.DeleteProperty)

		d.PATCH("/enquiries/:id", h.UpdateEnquiryStatus)
		d.PATCH("/bookings/:id", h.UpdateBookingStatus)
		d.DELETE("/bookings/:id", h.DeleteBooking)
	}
}

// Open hydrates view and propertyId from the query string.
func (h *Handler) Open(c *gin.Context) {
	snap := h.service.Open(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Request.URL.Query())
	response.JSON(c, http.StatusOK, snap)
}

func (h *Handler) Current(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Current(middleware.UserID(c)))
}

func (h *Handler) ShowView(c *gin.Context) {
	snap, err := h.service.ShowView(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("view"))
	reply(c, snap, err)
}

func (h *Handler) SetFilters(c *gin.Context) {
	var req FiltersRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	snap, err := h.service.SetFilters(middleware.UserID(c), &req)
	reply(c, snap, err)
}

func (h *Handler) ViewAvailability(c *gin.Context) {
	snap := h.service.ViewAvailability(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("id"))
	response.JSON(c, http.StatusOK, snap)
}

func (h *Handler) SubmitProperty(c *gin.Context) {
	snap, err := h.service.SubmitProperty(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("id"))
	reply(c, snap, err)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	snap, err := h.service.DeleteProperty(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("id"), confirmed(c))
	reply(c, snap, err)
}

func (h *Handler) UpdateEnquiryStatus(c *gin.Context) {
	id, req, ok := statusChange(c)
	if !ok {
		return
	}
	snap, err := h.service.UpdateEnquiryStatus(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), id, req.Status, confirmed(c))
	reply(c, snap, err)
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, req, ok := statusChange(c)
	if !ok {
		return
	}
	snap, err := h.service.UpdateBookingStatus(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), id, req.Status, confirmed(c))
	reply(c, snap, err)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	snap, err := h.service.DeleteBooking(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), id, confirmed(c))
	reply(c, snap, err)
}

func statusChange(c *gin.Context) (int64, *StatusRequest, bool) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.FromError(c, err)
		return 0, nil, false
	}
	var req StatusRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return 0, nil, false
	}
	return id, &req, true
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

func reply(c *gin.Context, snap *Snapshot, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap)
}
