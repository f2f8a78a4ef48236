package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys populated by identityMiddleware.
const (
	userIdCtx   = "userId"
	userRoleCtx = "userRole"
)

func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIdCtx, claims.UserID)
	c.Set(userRoleCtx, claims.Role)
	c.Next()
}

// currentUserId reads the authenticated user id stored by identityMiddleware.
func currentUserId(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIdCtx)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// currentUserRole reads the authenticated user's role stored by identityMiddleware.
func currentUserRole(c *gin.Context) string {
	v, ok := c.Get(userRoleCtx)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}
