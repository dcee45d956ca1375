package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"petspa-backend/internal/auth"
	"petspa-backend/internal/model"
	"petspa-backend/internal/store"
)

// userKey is the gin context key holding the authenticated user.
const userKey = "currentUser"

// Authenticate verifies the bearer token and loads the current user into the
// request context. Requests without a valid token are rejected with 401.
func Authenticate(issuer *auth.TokenIssuer, s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No autorizado, no hay token"})
			return
		}

		userID, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No autorizado, token inválido"})
			return
		}

		user, err := s.UserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No autorizado, token inválido"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// AdminOnly rejects authenticated non-admin users. It must run after
// Authenticate.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Acceso denegado. Se requieren permisos de administrador."})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on unauthenticated
// routes.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
