package middlewares

import (
	"net/http"
	"strings"

	"github.com/belovedchibuikem/smarthousing-pro-api-sub000/utils"

	"github.com/gin-gonic/gin"
)

func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyAdminToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			c.Abort()
			return
		}

		// jwt numbers decode as float64
		if idf, ok := claims["admin_id"].(float64); ok {
			c.Set("admin_id", uint(idf))
		}
		c.Set("username", claims["username"])
		c.Next()
	}
}
