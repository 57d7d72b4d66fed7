package search

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/pkg/response"
)

type Handler struct {
	svc      *Service
	sessions *Sessions
	facets   *FacetProvider
}

func NewHandler(svc *Service, sessions *Sessions, facets *FacetProvider) *Handler {
	return &Handler{svc: svc, sessions: sessions, facets: facets}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/search/tours", h.SearchTours)
	public.GET("/search/destinations", h.SearchDestinations)
	public.GET("/search/filters", h.Filters)
}

// feedResponse is a feed snapshot plus what the client needs to continue it.
type feedResponse[T any] struct {
	Session string `json:"session"`
	Query   string `json:"query"`
	Snapshot[T]
}

type pageParams struct {
	limit  int
	offset int
	more   bool
}

// SearchTours runs or continues the tours search of the caller's session.
// GET /search/tours?q=&continent=&...&limit=&offset=&more=
func (h *Handler) SearchTours(c *gin.Context) {
	q, page, ok := h.parse(c)
	if !ok {
		return
	}

	sess := h.sessions.Get(sessionID(c))
	c.Header(SessionHeader, sess.ID)

	key := EncodeQuery(q).Encode()
	load := func(ctx context.Context, offset int) (Page[domain.SearchTour], error) {
		return h.svc.SearchTours(ctx, q.Filters, q.Sort, page.limit, offset)
	}

	var (
		snap Snapshot[domain.SearchTour]
		err  error
	)
	switch {
	case sess.switchTours(key):
		snap, err = sess.Tours.Load(c.Request.Context(), 0, load)
	case page.more:
		snap, err = sess.Tours.LoadMore(c.Request.Context(), load)
	default:
		snap, err = sess.Tours.Load(c.Request.Context(), page.offset, load)
	}

	respond(c, sess.ID, key, snap, err)
}

// SearchDestinations is SearchTours for destinations. Sort is ignored.
// GET /search/destinations
func (h *Handler) SearchDestinations(c *gin.Context) {
	q, page, ok := h.parse(c)
	if !ok {
		return
	}

	sess := h.sessions.Get(sessionID(c))
	c.Header(SessionHeader, sess.ID)

	q.Sort = domain.SortRecommended
	key := EncodeQuery(q).Encode()
	load := func(ctx context.Context, offset int) (Page[domain.SearchDestination], error) {
		return h.svc.SearchDestinations(ctx, q.Filters, page.limit, offset)
	}

	var (
		snap Snapshot[domain.SearchDestination]
		err  error
	)
	switch {
	case sess.switchDestinations(key):
		snap, err = sess.Destinations.Load(c.Request.Context(), 0, load)
	case page.more:
		snap, err = sess.Destinations.LoadMore(c.Request.Context(), load)
	default:
		snap, err = sess.Destinations.Load(c.Request.Context(), page.offset, load)
	}

	respond(c, sess.ID, key, snap, err)
}

// Filters returns the values behind the search dropdowns.
// GET /search/filters
func (h *Handler) Filters(c *gin.Context) {
	response.Success(c, http.StatusOK, h.facets.Facets(c.Request.Context()))
}

func (h *Handler) parse(c *gin.Context) (Query, pageParams, bool) {
	q, err := ParseQuery(c.Request.URL.Query())
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search filters", qe.Fields)
		} else {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search filters")
		}
		return Query{}, pageParams{}, false
	}

	var page pageParams
	if v := c.Query("limit"); v != "" {
		page.limit, err = strconv.Atoi(v)
		if err != nil || page.limit < 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be a non-negative integer")
			return Query{}, pageParams{}, false
		}
	}
	if v := c.Query("offset"); v != "" {
		page.offset, err = strconv.Atoi(v)
		if err != nil || page.offset < 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_PAGINATION", "offset must be a non-negative integer")
			return Query{}, pageParams{}, false
		}
	}
	page.more, _ = strconv.ParseBool(c.Query("more"))

	return q, page, true
}

func sessionID(c *gin.Context) string {
	if id := c.GetHeader(SessionHeader); id != "" {
		return id
	}
	return c.Query("session")
}

// respond writes a feed snapshot. A failure covered by canned results is still a 200,
// with State "error" and Fallback set; an uncovered one goes out as an upstream error.
func respond[T any](c *gin.Context, session, query string, snap Snapshot[T], err error) {
	if err != nil && !snap.Fallback {
		response.Upstream(c, err)
		return
	}
	if err != nil {
		slog.Warn("search served fallback results",
			"path", c.FullPath(),
			"session", session,
			"error", err,
		)
	}

	response.Success(c, http.StatusOK, feedResponse[T]{
		Session:  session,
		Query:    query,
		Snapshot: snap,
	})
}
