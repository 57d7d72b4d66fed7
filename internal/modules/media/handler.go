package media

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	media := admin.Group("/media")
	{
		media.GET("", h.List)
		media.POST("", h.Upload)
		media.DELETE("/:id", h.Delete)
	}
}

// List GET /admin/media?category=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	res, err := h.svc.List(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Upload POST /admin/media (multipart: file, alt, caption, category, tags)
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "A file is required",
			map[string]string{"file": "required"})
		return
	}

	var meta Meta
	if err := c.ShouldBind(&meta); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid media fields")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Unreadable file")
		return
	}
	defer f.Close()

	m, err := h.svc.Upload(c.Request.Context(), f, fh.Filename, fh.Size, meta)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// Delete DELETE /admin/media/:id?publicId=
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.Query("publicId")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Media not found")
	case errors.Is(err, ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid media ID")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the 10 MB limit")
	case errors.Is(err, ErrEmptyFile):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "File is empty",
			map[string]string{"file": "required"})
	case errors.Is(err, ErrUnsupportedType):
		response.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Only images, MP4 video and PDF are accepted")
	case errors.Is(err, ErrInvalidMediaMeta):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid media fields")
	case errors.Is(err, ErrUploadsDisabled):
		response.Error(c, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "Media uploads are not configured")
	default:
		response.Upstream(c, err)
	}
}
