package roundtest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bacbo-live-client/internal/services"
)

func RequireToken(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/display" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("client_id", claims.ClientID)
		c.Set("request_id", claims.RequestID)

		c.Next()
	}
}
