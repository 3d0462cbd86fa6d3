package middleware

import (
	"net/http"
	"strings"

	"carelink/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey and ContextProviderIDKey are the gin context keys set by
// the auth middlewares.
const (
	ContextUserIDKey     = "userID"
	ContextProviderIDKey = "providerID"
)

// JWTAuthUserMiddleware authenticates requests from client accounts.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return jwtAuth("user", ContextUserIDKey)
}

// JWTAuthProviderMiddleware authenticates requests from caregiver accounts.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
	return jwtAuth("provider", ContextProviderIDKey)
}

func jwtAuth(role, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, tokenRole, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if tokenRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token role not permitted for this resource"})
			return
		}

		// The cached hash is the source of truth for active sessions; a
		// missing or mismatched entry means the token was revoked.
		key := utils.AuthCachePrefix + role + ":" + subject
		cachedHash, err := utils.GetAuthCacheClient().Get(c.Request.Context(), key).Result()
		if err != nil || cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set(contextKey, subject)
		c.Next()
	}
}
