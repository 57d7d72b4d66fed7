package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/graphql"
	"traveladdicts/internal/pkg/jwt"
	"traveladdicts/internal/pkg/response"
)

var adminRoles = map[string]bool{
	"admin":       true,
	"super_admin": true,
	"editor":      true,
}

// SessionChecker confirms a bearer token with the travel API and returns the role
// of the admin it belongs to.
type SessionChecker interface {
	CheckSession(ctx context.Context, token string) (string, error)
}

// AdminAuth guards the admin API. The bearer token is checked locally for shape and
// expiry, then attached to the request context so every GraphQL call made while
// serving the request is sent with it. Without a JWT secret the signature cannot be
// checked here, so the session is confirmed through sessions before anything is
// served; with neither, every admin request is refused. Every rejection uses code
// UNAUTHORIZED so the admin UI can drop its stored token and return to the login page.
func AdminAuth(jwtService *jwt.Service, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}
		token := strings.TrimSpace(parts[1])

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Session expired"
			}
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
			c.Abort()
			return
		}

		role := claims.Role
		if !jwtService.Verifies() {
			confirmed, ok := confirmSession(c, sessions, token)
			if !ok {
				c.Abort()
				return
			}
			if role == "" {
				role = confirmed
			}
		}

		// Tokens without a role are left for the travel API to judge.
		if role != "" && !adminRoles[strings.ToLower(role)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}

		c.Set("admin_id", claims.Subject)
		c.Set("role", role)
		c.Request = c.Request.WithContext(graphql.ContextWithToken(c.Request.Context(), token))
		c.Next()
	}
}

// confirmSession writes the error response itself when it returns false.
func confirmSession(c *gin.Context, sessions SessionChecker, token string) (string, bool) {
	if sessions == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session cannot be verified")
		return "", false
	}
	role, err := sessions.CheckSession(c.Request.Context(), token)
	if err == nil {
		return role, true
	}
	if graphql.KindOf(err) == graphql.KindNetwork {
		response.Upstream(c, err)
		return "", false
	}
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
	return "", false
}
