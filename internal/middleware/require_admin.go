package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"costumes_back_end/internal/utils"
)

// RequireAdmin vérifie que le jeton porte le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != utils.AdminRole {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}
	c.Next()
}
