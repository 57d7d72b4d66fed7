package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept", "Authorization",
			"X-Requested-With", RequestIDHeader, "X-Search-Session",
		},
		ExposeHeaders:    []string{RequestIDHeader, "X-Search-Session"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	})
}
