package property

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"groupstays/internal/domain/listing"
	"groupstays/internal/middleware"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/request"
	"groupstays/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /properties
func (h *Handler) Create(c *gin.Context) {
	var in listing.Payload
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// Get handles GET /properties?id=
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Update handles PUT /properties?id=
func (h *Handler) Update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		response.Error(c, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Query("id"), body)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Submit handles POST /properties/submit
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	p, err := h.service.Submit(c.Request.Context(), middleware.UserID(c), req.PropertyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// ListMine handles GET /owner/properties?status=
func (h *Handler) ListMine(c *gin.Context) {
	props, err := h.service.ListForOwner(c.Request.Context(), middleware.UserID(c), c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nonNil(props))
}

// Delete handles DELETE /owner/properties/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true, "id": c.Param("id")})
}

// Availability handles GET /owner/properties/:id/availability
func (h *Handler) Availability(c *gin.Context) {
	a, err := h.service.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// SetCalendar handles PUT /owner/properties/:id/calendar
func (h *Handler) SetCalendar(c *gin.Context) {
	var req CalendarRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		response.FromError(c, apperr.Validation("Invalid request body", map[string]any{"date": "datetime=2006-01-02"}))
		return
	}

	e, err := h.service.SetCalendar(c.Request.Context(), c.Param("id"), date, req.Status, req.Note)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, e)
}

// AdminList handles GET /admin/properties?status=
func (h *Handler) AdminList(c *gin.Context) {
	props, err := h.service.ListForReview(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nonNil(props))
}

// Approve handles POST /admin/properties/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	p, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Reject handles POST /admin/properties/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	p, err := h.service.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func nonNil(props []*Property) []*Property {
	if props == nil {
		return []*Property{}
	}
	return props
}
