package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"traveladdicts/internal/graphql"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Upstream writes the envelope for a failed GraphQL call. The error code tells the
// frontend what to do: UNAUTHORIZED means drop the admin token and go to the login page.
func Upstream(c *gin.Context, err error) {
	_ = c.Error(err)

	var gqlErr *graphql.Error
	if !errors.As(err, &gqlErr) {
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	switch gqlErr.Kind {
	case graphql.KindUnauthorized:
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired, please sign in again")
	case graphql.KindValidation:
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", gqlErr.Message)
	case graphql.KindNetwork:
		Error(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Travel API is unreachable")
	default:
		Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", gqlErr.Message)
	}
}
