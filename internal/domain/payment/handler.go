package payment

import (
	"math"
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

// History handles GET /owner/payment-history?limit=&offset=
func (h *Handler) History(c *gin.Context) {
	limit := request.IntQuery(c, "limit", DefaultLimit, 1, MaxLimit)
	offset := request.IntQuery(c, "offset", 0, 0, math.MaxInt32)

	out, err := h.service.History(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func RegisterOwnerRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/owner/payment-history", h.History)
}
