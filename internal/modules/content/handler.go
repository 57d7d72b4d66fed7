package content

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/faqs", h.FAQs)
	public.GET("/blog", h.Posts)
	public.GET("/blog/:slug", h.Post)
	public.GET("/pages/:slug", h.Page)
	public.GET("/gallery", h.Gallery)
}

// FAQs GET /faqs?q=&category=
func (h *Handler) FAQs(c *gin.Context) {
	var f Filter
	_ = c.ShouldBindQuery(&f)
	response.Success(c, http.StatusOK, h.svc.FAQs(f))
}

// Posts GET /blog?q=&category=&tag=
func (h *Handler) Posts(c *gin.Context) {
	var f Filter
	_ = c.ShouldBindQuery(&f)
	response.Success(c, http.StatusOK, h.svc.Posts(f))
}

func (h *Handler) Post(c *gin.Context) {
	p, err := h.svc.Post(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Page(c *gin.Context) {
	p, err := h.svc.Page(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Gallery GET /gallery?category=&q=
func (h *Handler) Gallery(c *gin.Context) {
	var f Filter
	_ = c.ShouldBindQuery(&f)
	res, err := h.svc.Gallery(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Content not found")
		return
	}
	response.Upstream(c, err)
}
