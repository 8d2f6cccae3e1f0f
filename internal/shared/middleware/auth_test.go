package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agromap-backend/internal/shared/authz"
	"agromap-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens TokenVerifier, mws ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mws, func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "role": actor.Role, "viewer": ViewerID(c) != nil})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	valid, err := tokens.GenerateToken(uuid.NewString(), "ana", "MANAGER")
	require.NoError(t, err)

	r := newRouter(tokens, AuthMiddleware(tokens))

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = do(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"MANAGER"`)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	valid, err := tokens.GenerateToken(uuid.NewString(), "ana", "REGULAR")
	require.NoError(t, err)

	r := newRouter(tokens, OptionalAuthMiddleware(tokens))

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"viewer":false`)

	w = do(r, "expired-or-bogus")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = do(r, valid)
	assert.Contains(t, w.Body.String(), `"viewer":true`)
}

func TestRoleGuards(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	regular, _ := tokens.GenerateToken(uuid.NewString(), "ana", string(authz.RoleRegular))
	manager, _ := tokens.GenerateToken(uuid.NewString(), "leo", string(authz.RoleManager))
	admin, _ := tokens.GenerateToken(uuid.NewString(), "root", string(authz.RoleAdmin))

	mgr := newRouter(tokens, AuthMiddleware(tokens), ManagerOrAdmin())
	assert.Equal(t, http.StatusForbidden, do(mgr, regular).Code)
	assert.Equal(t, http.StatusOK, do(mgr, manager).Code)
	assert.Equal(t, http.StatusOK, do(mgr, admin).Code)

	adm := newRouter(tokens, AuthMiddleware(tokens), AdminOnly())
	assert.Equal(t, http.StatusForbidden, do(adm, manager).Code)
	assert.Equal(t, http.StatusOK, do(adm, admin).Code)
}
