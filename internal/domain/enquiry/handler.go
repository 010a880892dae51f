package enquiry

import (
	"net/http"

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

// Submit handles POST /enquiries (public)
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	e, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, e)
}

// List handles GET /owner/enquiries?status=&propertyId=
func (h *Handler) List(c *gin.Context) {
	out, err := h.service.ListForOwner(c.Request.Context(), middleware.UserID(c), c.Query("status"), c.Query("propertyId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// UpdateStatus handles PATCH /owner/enquiries
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	e, err := h.service.UpdateStatus(c.Request.Context(), middleware.UserID(c), req.ID, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, e)
}

func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/enquiries", h.Submit)
}

func RegisterOwnerRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/owner/enquiries", h.List)
	r.PATCH("/owner/enquiries", h.UpdateStatus)
}
