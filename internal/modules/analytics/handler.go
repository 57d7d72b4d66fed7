package analytics

import (
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

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	stats, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
