package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/authz"
	"library-backend/internal/shared/response"
	"library-backend/pkg/jwt"
)

// Auth extracts the bearer token, validates it and attaches the caller's
// roles to the request context. Requests without a token pass through
// anonymously: read endpoints are public and the services gate mutations
// themselves.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		ctx := authz.WithRoles(c.Request.Context(), authz.ParseRoles(claims.Roles))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles rejects requests whose caller holds none of the given roles.
// The services re-check policy; this is the transport-level gate that keeps
// unauthorized traffic out of the admin route groups.
func RequireRoles(roles ...authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		have := authz.RolesFromContext(c.Request.Context())
		for _, need := range roles {
			for _, r := range have {
				if r == need {
					c.Next()
					return
				}
			}
		}
		response.Forbidden(c, "insufficient role")
		c.Abort()
	}
}
