package events

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"traveladdicts/internal/graphql"
	"traveladdicts/internal/pkg/jwt"
	"traveladdicts/internal/pkg/response"
)

// SessionChecker confirms a token with the travel API when it cannot be verified locally.
type SessionChecker interface {
	CheckSession(ctx context.Context, token string) (string, error)
}

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	sessions SessionChecker
	upgrader websocket.Upgrader
}

// NewHandler accepts connections only from allowedOrigins; requests without an Origin
// header (non-browser clients) are let through. sessions may be nil when jwtService
// verifies signatures.
func NewHandler(hub *Hub, jwtService *jwt.Service, sessions SessionChecker, allowedOrigins []string) *Handler {
	return &Handler{
		hub:      hub,
		jwt:      jwtService,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// RegisterRoutes mounts the socket outside the bearer-auth group: browsers cannot set
// headers on a websocket handshake, so the token travels as ?token=.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/admin/ws", h.Connect)
}

func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token query parameter is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}
	if !h.jwt.Verifies() {
		if h.sessions == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session cannot be verified")
			return
		}
		if _, err := h.sessions.CheckSession(c.Request.Context(), token); err != nil {
			if graphql.KindOf(err) == graphql.KindNetwork {
				response.Upstream(c, err)
				return
			}
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.hub.Serve(conn, claims.Subject)
}
