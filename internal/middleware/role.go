package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainProfile "plantops/internal/domain/profile"
	"plantops/pkg/utils"
)

// RoleMiddleware allows the request through only when the caller's role
// matches one of the allowed roles. Comparison is case-insensitive.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		callerRole, ok := role.(string)
		if !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if strings.EqualFold(callerRole, allowedRole) {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

// AdminOnly restricts access to superadmins and admins.
func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(
		string(domainProfile.RoleSuperadmin),
		string(domainProfile.RoleAdmin),
	)
}

// ManagerAndAbove restricts access to management roles.
func ManagerAndAbove() gin.HandlerFunc {
	return RoleMiddleware(
		string(domainProfile.RoleSuperadmin),
		string(domainProfile.RoleAdmin),
		string(domainProfile.RoleManager),
	)
}

// OperatorAndAbove allows every role that performs work on the floor.
func OperatorAndAbove() gin.HandlerFunc {
	return RoleMiddleware(
		string(domainProfile.RoleSuperadmin),
		string(domainProfile.RoleAdmin),
		string(domainProfile.RoleManager),
		string(domainProfile.RoleOperator),
	)
}
