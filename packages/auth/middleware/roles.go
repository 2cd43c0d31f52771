package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole only lets through tokens carrying the given role. It must run
// after JWTMiddleware.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return RequireAnyRole(requiredRole)
}

func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held, exists := getRoles(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			for _, h := range held {
				if h == role {
					hasRole = true
					break
				}
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":          "Insufficient permissions",
				"required_roles": roles,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
