package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/admin/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(admin *gin.RouterGroup) {
	admin.GET("/me", h.GetMe)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}

func (h *Handler) GetMe(c *gin.Context) {
	me, err := h.service.Me(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not signed in")
			return
		}
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}
