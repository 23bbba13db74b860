package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantops/internal/config"
	domainProfile "plantops/internal/domain/profile"
	"plantops/pkg/utils"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ProfileIDKey = "profileID"
	EmailKey     = "email"
	RoleKey      = "role"
)

// AuthMiddleware validates the bearer token and loads the caller's
// profile. The role placed in the context comes from storage, not from
// the token claim, so a role change or deactivation takes effect on the
// next request rather than at token expiry.
func AuthMiddleware(cfg *config.Config, profileRepo domainProfile.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		prof, err := profileRepo.GetByID(c.Request.Context(), claims.ProfileID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Account no longer exists")
			c.Abort()
			return
		}

		if !prof.IsActive {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set(ProfileIDKey, prof.ID)
		c.Set(EmailKey, prof.Email)
		c.Set(RoleKey, string(prof.Role))

		c.Next()
	}
}

// GetProfileID retrieves the authenticated profile ID from the Gin context.
func GetProfileID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ProfileIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
