package middleware

import (
	"runtime/debug"

	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery turns a handler panic into the standard 500 envelope
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString(ContextKeyRequestID)).
					Str("method", c.Request.Method).
					Str("path", c.FullPath()).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				response.Abort(c, apperror.Unexpected("internal server error", nil))
			}
		}()

		c.Next()
	}
}
