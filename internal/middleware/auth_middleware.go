package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/pkg/jwt"
)

// AdminContextKey is the key used to store admin claims in Gin context
const AdminContextKey = "admin"

// AdminContext represents the authenticated admin's information
type AdminContext struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
				"code":  "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format. Expected: Bearer <token>",
				"code":  "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired access token",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		c.Set(AdminContextKey, AdminContext{Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

// RequireRole creates a middleware that checks the authenticated role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminCtx, exists := GetAdminContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Admin context not found. Auth middleware may not be applied.",
				"code":  "MISSING_ADMIN_CONTEXT",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if adminCtx.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": "You don't have permission to access this resource",
			"code":  "INSUFFICIENT_PERMISSIONS",
		})
		c.Abort()
	}
}

// GetAdminContext retrieves the admin context from Gin context
func GetAdminContext(c *gin.Context) (AdminContext, bool) {
	value, exists := c.Get(AdminContextKey)
	if !exists {
		return AdminContext{}, false
	}
	adminCtx, ok := value.(AdminContext)
	if !ok {
		return AdminContext{}, false
	}
	return adminCtx, true
}
