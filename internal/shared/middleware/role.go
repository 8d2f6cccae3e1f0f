package middleware

import (
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireCapability must run after AuthMiddleware.
func RequireCapability(can func(authz.Actor) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Abort(c, apperror.Unauthorized("user not authenticated"))
			return
		}
		if !can(actor) {
			response.Abort(c, apperror.Forbidden("you do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// AdminOnly allows ADMIN callers
func AdminOnly() gin.HandlerFunc {
	return RequireCapability(authz.CanAdminister)
}

// ManagerOrAdmin allows MANAGER and ADMIN callers
func ManagerOrAdmin() gin.HandlerFunc {
	return RequireCapability(authz.CanManageMarkets)
}
