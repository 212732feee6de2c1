package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reviewin_backend/internal/config"
	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

// TokenBlocklist is the revocation set consulted on every request.
// Logout adds a token's JTI; validation of that exact token then fails.
type TokenBlocklist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware validates the bearer access token and stores its claims
// in the context. Refresh tokens are rejected here; they are only good
// against the refresh endpoint.
func AuthMiddleware(cfg *config.Config, blocklist TokenBlocklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c, "Missing authorization token")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != util.TokenTypeAccess {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := blocklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		if revoked {
			util.Unauthorized(c, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware resolves the acting user from the validated claims and
// gates on role. With no roles given, any existing user passes. The full
// user record lands in the context for the handlers.
func RoleMiddleware(userRepo *repository.UserRepository, roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.NotFound(c, "User not found")
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if user.Role == role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				util.Forbidden(c, string(roles[0])+" access required")
				c.Abort()
				return
			}
		}

		c.Set("currentUser", user)
		c.Next()
	}
}
