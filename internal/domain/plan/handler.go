package plan

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

// ListPlans godoc
// @Summary List listing plans
// @Tags Plans
// @Produce json
// @Router /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans)
}

// Purchases godoc
// @Summary Plan purchases of the signed-in owner
// @Tags Plans
// @Security BearerAuth
// @Router /owner/plan-purchases [get]
func (h *Handler) Purchases(c *gin.Context) {
	out, err := h.service.Purchases(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *Handler) Unused(c *gin.Context) {
	out, err := h.service.Unused(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// MarkUsed godoc
// @Summary Consume a plan purchase for a property
// @Tags Plans
// @Security BearerAuth
// @Accept json
// @Router /owner/mark-plan-used [post]
func (h *Handler) MarkUsed(c *gin.Context) {
	var req MarkUsedRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	p, err := h.service.MarkUsed(c.Request.Context(), middleware.UserID(c), req.PurchaseID, req.PropertyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true, "purchase": p})
}

func (h *Handler) InternalMarkUsed(c *gin.Context) {
	var req InternalMarkUsedRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	p, err := h.service.MarkUsed(c.Request.Context(), req.UserID, req.PurchaseID, req.PropertyID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true, "purchase": p})
}

func (h *Handler) RecordPurchase(c *gin.Context) {
	var req RecordPurchaseRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	p, err := h.service.RecordPurchase(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/plans", h.ListPlans)
}

func RegisterOwnerRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/owner/plan-purchases", h.Purchases)
	r.GET("/owner/unused-plan", h.Unused)
	r.POST("/owner/mark-plan-used", h.MarkUsed)
}

// RegisterInternalRoutes expects r to be guarded by the internal token.
func RegisterInternalRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/internal/plan-purchases", h.RecordPurchase)
	r.POST("/internal/plan-purchases/mark-used", h.InternalMarkUsed)
}
