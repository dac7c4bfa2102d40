package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

// TokenAuthMiddleware validates the bearer token and re-reads the user record
// behind it on every request. Role and existence always come from the store,
// never from token claims, so deletions and role changes bite immediately.
func TokenAuthMiddleware(tokens *service.TokenService, users *service.UserService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokens.ExtractToken(c.Request)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := tokens.ParseSubject(tokenString)
		if err != nil {
			logger.Warnf("[%s] token rejected, %s", c.GetString("requestId"), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warnf("[%s] token subject %s has no user, %s", c.GetString("requestId"), userID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes on the persisted role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}
