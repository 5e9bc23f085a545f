package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentalcars/booking-backend/internal/models"
	"github.com/rentalcars/booking-backend/pkg/jwt"
)

// ActorContextKey is the key used to store the authenticated actor in Gin context
const ActorContextKey = "actor"

// AuthMiddleware creates a middleware that validates JWT tokens and stores
// the authenticated actor in the request context.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorize to access this route",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorize to access this route",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorize to access this route",
			})
			c.Abort()
			return
		}

		c.Set(ActorContextKey, models.Actor{
			ID:   claims.UserID,
			Role: models.Role(claims.Role),
		})

		c.Next()
	}
}

// RequireRole creates a middleware that checks if the actor has one of the
// required roles. Must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := GetActor(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorize to access this route",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "User role " + string(actor.Role) + " is not authorized to access this route",
		})
		c.Abort()
	}
}

// GetActor retrieves the authenticated actor from Gin context
func GetActor(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(ActorContextKey)
	if !exists {
		return models.Actor{}, false
	}

	actor, ok := value.(models.Actor)
	if !ok {
		return models.Actor{}, false
	}

	return actor, true
}

// MustGetActor retrieves the actor or panics (use only after AuthMiddleware)
func MustGetActor(c *gin.Context) models.Actor {
	actor, exists := GetActor(c)
	if !exists {
		panic("actor not found - ensure AuthMiddleware is applied")
	}
	return actor
}
