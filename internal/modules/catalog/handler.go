package catalog

import (
	"errors"
	"net/http"
	"strconv"

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
	tours := public.Group("/tours")
	{
		tours.GET("", h.ListTours)
		tours.GET("/featured", h.FeaturedTours)
		tours.GET("/:slug", h.GetTour)
		tours.GET("/:slug/pricing", h.GetPricing)
		tours.GET("/:slug/itinerary", h.GetItinerary)
	}
	destinations := public.Group("/destinations")
	{
		destinations.GET("", h.ListDestinations)
		destinations.GET("/:slug", h.GetDestination)
	}

	adminTours := admin.Group("/tours")
	{
		adminTours.POST("", h.CreateTour)
		adminTours.PUT("/:id", h.UpdateTour)
		adminTours.DELETE("/:id", h.DeleteTour)
		adminTours.PUT("/:id/pricing", h.UpdatePricing)
		adminTours.PUT("/:id/itinerary", h.UpdateItinerary)
	}
	adminDestinations := admin.Group("/destinations")
	{
		adminDestinations.POST("", h.CreateDestination)
		adminDestinations.PUT("/:id", h.UpdateDestination)
		adminDestinations.DELETE("/:id", h.DeleteDestination)
	}
}

// ListTours GET /tours?limit=&offset=
func (h *Handler) ListTours(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}
	res, err := h.svc.ListTours(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) FeaturedTours(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	tours, err := h.svc.FeaturedTours(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tours)
}

func (h *Handler) GetTour(c *gin.Context) {
	tour, err := h.svc.GetTour(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tour)
}

func (h *Handler) GetPricing(c *gin.Context) {
	tour, err := h.svc.GetTour(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	tiers, err := h.svc.TourPricing(c.Request.Context(), tour.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tiers)
}

func (h *Handler) GetItinerary(c *gin.Context) {
	tour, err := h.svc.GetTour(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	days, err := h.svc.TourItinerary(c.Request.Context(), tour.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, days)
}

func (h *Handler) ListDestinations(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}
	res, err := h.svc.ListDestinations(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetDestination(c *gin.Context) {
	d, err := h.svc.GetDestination(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) CreateTour(c *gin.Context) {
	h.upsertTour(c, "", http.StatusCreated)
}

func (h *Handler) UpdateTour(c *gin.Context) {
	h.upsertTour(c, c.Param("id"), http.StatusOK)
}

func (h *Handler) upsertTour(c *gin.Context, id string, status int) {
	var in domain.TourInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	tour, err := h.svc.UpsertTour(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, status, tour)
}

func (h *Handler) DeleteTour(c *gin.Context) {
	if err := h.svc.DeleteTour(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) UpdatePricing(c *gin.Context) {
	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	tiers, err := h.svc.UpdatePricing(c.Request.Context(), c.Param("id"), req.Tiers)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tiers)
}

func (h *Handler) UpdateItinerary(c *gin.Context) {
	var req UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	days, err := h.svc.UpdateItinerary(c.Request.Context(), c.Param("id"), req.Days)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, days)
}

func (h *Handler) CreateDestination(c *gin.Context) {
	h.upsertDestination(c, "", http.StatusCreated)
}

func (h *Handler) UpdateDestination(c *gin.Context) {
	h.upsertDestination(c, c.Param("id"), http.StatusOK)
}

func (h *Handler) upsertDestination(c *gin.Context, id string, status int) {
	var in domain.DestinationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	d, err := h.svc.UpsertDestination(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, status, d)
}

func (h *Handler) DeleteDestination(c *gin.Context) {
	if err := h.svc.DeleteDestination(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func pageParams(c *gin.Context) (int, int, bool) {
	var p struct {
		Limit  int `form:"limit" binding:"omitempty,gte=0"`
		Offset int `form:"offset" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_PAGINATION", "limit and offset must be non-negative integers")
		return 0, 0, false
	}
	return p.Limit, p.Offset, true
}

func writeError(c *gin.Context, err error) {
	var inputErr *InputError
	switch {
	case errors.As(err, &inputErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", inputErr.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrInvalidID):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
	default:
		response.Upstream(c, err)
	}
}
