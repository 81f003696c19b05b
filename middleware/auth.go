package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

// AuthMiddleware validates the admin JWT from cookie or Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		// Try to get token from cookie first
		cookieToken, err := c.Cookie("admin_token")
		if err == nil && cookieToken != "" {
			token = cookieToken
		} else {
			// Fallback to Authorization header
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
				c.Abort()
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
				c.Abort()
				return
			}

			token = parts[1]
		}

		// Validate token
		claims, err := services.VerifyAdminJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		// Set admin info in context
		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)

		c.Next()
	}
}

func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	adminID, exists := c.Get("adminID")
	if !exists {
		return "", false
	}
	return adminID.(string), true
}

func GetAdminEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get("adminEmail")
	if !exists {
		return "", false
	}
	return email.(string), true
}
