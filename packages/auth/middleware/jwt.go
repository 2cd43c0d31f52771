package middleware

import (
	"net/http"
	"strings"

	"bab-arcade/packages/auth/utils"

	"github.com/gin-gonic/gin"
)

const (
	profileIDKey = "profile_id"
	nicknameKey  = "nickname"
	rolesKey     = "profile_roles"
)

// JWTMiddleware requires a valid Bearer access token and exposes its claims
// on the context.
func JWTMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(profileIDKey, claims.ProfileID)
		c.Set(nicknameKey, claims.Nickname)
		c.Set(rolesKey, claims.Roles)
		c.Next()
	}
}

func GetProfileID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(profileIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func GetNickname(c *gin.Context) (string, bool) {
	v, ok := c.Get(nicknameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

func getRoles(c *gin.Context) ([]string, bool) {
	v, ok := c.Get(rolesKey)
	if !ok {
		return nil, false
	}
	roles, ok := v.([]string)
	return roles, ok
}
