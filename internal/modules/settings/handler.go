package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/settings/public", h.GetPublic)
	}
	if admin != nil {
		admin.GET("/settings", h.Get)
		admin.PUT("/settings", h.Save)
		admin.PATCH("/settings/:section", h.UpdateSetting)
		admin.POST("/settings/reset", h.Reset)
	}
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value"`
}

func (h *Handler) Get(c *gin.Context) {
	st, err := h.svc.Load(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, redacted(st))
}

func (h *Handler) GetPublic(c *gin.Context) {
	p, err := h.svc.Public(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Save(c *gin.Context) {
	var st domain.Settings
	if err := c.ShouldBindJSON(&st); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), st)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, redacted(saved))
}

// UpdateSetting PATCH /admin/settings/:section {"key": "siteName", "value": "X"}
func (h *Handler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	st, err := h.svc.UpdateSetting(c.Request.Context(), c.Param("section"), req.Key, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, redacted(st))
}

func (h *Handler) Reset(c *gin.Context) {
	st, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, redacted(st))
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid settings", verr.Fields)
	case errors.Is(err, ErrUnknownSection):
		response.Error(c, http.StatusNotFound, "UNKNOWN_SECTION", "Unknown settings section")
	case errors.Is(err, ErrUnknownKey):
		response.Error(c, http.StatusNotFound, "UNKNOWN_KEY", "Unknown setting")
	case errors.Is(err, ErrInvalidValue):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Value has the wrong type for this setting")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to access settings")
	}
}
