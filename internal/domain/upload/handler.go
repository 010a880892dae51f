package upload

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"groupstays/internal/middleware"
	"groupstays/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a listing image
// @Description JPEG, PNG or WebP up to 5 MB. Returns the public URL.
// @Tags Uploads
// @Accept multipart/form-data
// @Security BearerAuth
// @Param file formData file true "Image"
// @Router /uploads [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.FromError(c, errNoFile)
		return
	}

	up, err := h.service.Upload(c.Request.Context(), middleware.UserID(c), fileHeader)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, up)
}

// GetByID godoc
// @Summary Upload metadata
// @Tags Uploads
// @Router /uploads/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	up, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, up)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListMy(c *gin.Context) {
	out, err := h.service.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	uploads := r.Group("/uploads")
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.ListMy)
		uploads.GET("/:id", h.GetByID)
		uploads.DELETE("/:id", h.Delete)
	}
}
