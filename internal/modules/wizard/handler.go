package wizard

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"groupstays/internal/domain/listing"
	"groupstays/internal/domain/upload"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wizard/catalog", h.Catalog)

	sessions := rg.Group("/wizard/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("/:id", h.Get)
		sessions.DELETE("/:id", h.Delete)
		sessions.PATCH("/:id/fields", h.UpdateFields)

		sessions.POST("/:id/next", h.Next)
		sessions.POST("/:id/previous", h.Previous)
		sessions.POST("/:id/jump", h.Jump)

		sessions.POST("/:id/media", h.AddMedia)
		sessions.POST("/:id/media/url", h.AddMediaURL)
		sessions.POST("/:id/media/reorder", h.ReorderMedia)
		sessions.POST("/:id/media/hero", h.PromoteHero)
		sessions.DELETE("/:id/media/:index", h.RemoveMedia)

		sessions.POST("/:id/save", h.Save)
		sessions.POST("/:id/publish", h.Publish)
	}
}

func (h *Handler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, listing.DefaultCatalog())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := request.BindJSON(c, &req); err != nil {
			response.FromError(c, err)
			return
		}
	}
	v, err := h.service.Create(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), &req)
	reply(c, http.StatusCreated, v, err)
}

func (h *Handler) Get(c *gin.Context) {
	v, err := h.service.Get(middleware.UserID(c), c.Param("id"))
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(middleware.UserID(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateFields(c *gin.Context) {
	var req UpdateFieldsRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.service.UpdateFields(middleware.UserID(c), c.Param("id"), req.Fields)
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) Next(c *gin.Context) {
	v, err := h.service.Next(middleware.UserID(c), c.Param("id"))
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) Previous(c *gin.Context) {
	v, err := h.service.Previous(middleware.UserID(c), c.Param("id"))
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) Jump(c *gin.Context) {
	var req JumpRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.service.Jump(middleware.UserID(c), c.Param("id"), req.Step)
	reply(c, http.StatusOK, v, err)
}

// AddMedia handles multipart uploads in the "files" field.
func (h *Handler) AddMedia(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		response.FromError(c, apperr.BadRequest(CodeInvalidMedia, "No files provided"))
		return
	}

	files := make([]listing.MediaFile, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		files = append(files, mediaFile(fh))
	}

	v, err := h.service.AddMedia(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("id"), files)
	reply(c, http.StatusOK, v, err)
}

func mediaFile(fh *multipart.FileHeader) listing.MediaFile {
	return listing.MediaFile{
		Name:     fh.Filename,
		MimeType: sniff(fh),
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func sniff(fh *multipart.FileHeader) string {
	f, err := fh.Open()
	if err != nil {
		return ""
	}
	defer f.Close()
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	return upload.DetectMime(head[:n])
}

func (h *Handler) AddMediaURL(c *gin.Context) {
	var req MediaURLRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.service.AddMediaURL(middleware.UserID(c), c.Param("id"), req.URL)
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) ReorderMedia(c *gin.Context) {
	var req ReorderRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.service.ReorderMedia(middleware.UserID(c), c.Param("id"), req.Index, req.Direction)
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) PromoteHero(c *gin.Context) {
	var req HeroRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.service.PromoteHero(middleware.UserID(c), c.Param("id"), req.Index)
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) RemoveMedia(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.FromError(c, apperr.BadRequest(CodeInvalidMedia, "Valid image index is required"))
		return
	}
	v, err := h.service.RemoveMedia(middleware.UserID(c), c.Param("id"), index)
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) Save(c *gin.Context) {
	v, err := h.service.Save(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("id"))
	reply(c, http.StatusOK, v, err)
}

func (h *Handler) Publish(c *gin.Context) {
	v, err := h.service.Publish(c.Request.Context(), middleware.UserID(c), middleware.BearerToken(c), c.Param("id"))
	reply(c, http.StatusOK, v, err)
}

func reply(c *gin.Context, status int, v *View, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, status, v)
}
