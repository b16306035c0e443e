package middleware

import (
	"strings"

	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and, when roles are given,
// requires the actor to hold one of them.
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if userRole == role {
					allowed = true
					break
				}
			}
			if !allowed {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// ActorFromContext returns the authenticated user's id and role.
func ActorFromContext(c *gin.Context) (uint, int) {
	userID, _ := c.Get("userID")
	userRole, _ := c.Get("userRole")
	id, _ := userID.(uint)
	role, _ := userRole.(int)
	return id, role
}
