package middleware

import (
	"strings"

	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/internal/shared/response"
	"agromap-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middlewares
const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxRole     = "role"
)

// TokenVerifier is implemented by *jwt.Manager
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Abort(c, apperror.Unauthorized("access denied, no token provided"))
			return
		}

		if err := authenticate(c, tokens, token); err != nil {
			response.Abort(c, err)
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a valid token is present
// and lets anonymous or badly authenticated requests through as anonymous.
func OptionalAuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			_ = authenticate(c, tokens, token)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func authenticate(c *gin.Context, tokens TokenVerifier, token string) error {
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		return apperror.Unauthorized("invalid or expired token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return apperror.Unauthorized("invalid or expired token")
	}
	role, err := authz.Parse(claims.Role)
	if err != nil {
		return apperror.Unauthorized("invalid or expired token")
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRole, role)
	return nil
}

// CurrentActor returns the authenticated caller, if any
func CurrentActor(c *gin.Context) (authz.Actor, bool) {
	id, ok := c.Get(ctxUserID)
	if !ok {
		return authz.Actor{}, false
	}
	role, _ := c.Get(ctxRole)

	userID, _ := id.(uuid.UUID)
	r, _ := role.(authz.Role)
	return authz.Actor{ID: userID, Role: r}, true
}

// ViewerID is the caller's id or nil for anonymous requests
func ViewerID(c *gin.Context) *uuid.UUID {
	actor, ok := CurrentActor(c)
	if !ok {
		return nil
	}
	return &actor.ID
}
