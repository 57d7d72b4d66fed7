package booking

import (
	"errors"
	"fmt"
	"io"
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

// RegisterRoutes mounts the booking endpoints on an admin-only group.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	bookings := admin.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.GET("/:id/invoice", h.Invoice)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.PATCH("/:id/payment-status", h.UpdatePaymentStatus)
		bookings.POST("/:id/confirm", h.Confirm)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/payments", h.RecordPayment)
	}
}

// List GET /admin/bookings?q=&status=&paymentStatus=&from=&to=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	var f domain.BookingFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters")
		return
	}

	res, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Invoice(c *gin.Context) {
	id := c.Param("id")
	data, err := h.svc.Invoice(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="booking-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	b, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Reload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	b, err := h.svc.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus, req.Reload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	// body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	b, err := h.svc.Confirm(c.Request.Context(), c.Param("id"), req.Reload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "A cancellation reason is required",
			map[string]string{"reason": "required"})
		return
	}

	b, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), req.Reason, req.Reload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	b, err := h.svc.RecordPayment(c.Request.Context(), c.Param("id"), req.Payment, req.Reload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
	case errors.Is(err, ErrInvalidStatus):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status",
			map[string]string{"status": "oneof"})
	case errors.Is(err, ErrInvalidPaymentStatus):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown payment status",
			map[string]string{"paymentStatus": "oneof"})
	case errors.Is(err, ErrReasonRequired):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "A cancellation reason is required",
			map[string]string{"reason": "required"})
	case errors.Is(err, ErrInvalidPayment):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment")
	case errors.Is(err, ErrInvalidDateRange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid travel date range")
	default:
		response.Upstream(c, err)
	}
}
