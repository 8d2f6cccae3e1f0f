package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agromap-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Error(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperror.Validation("stars must be between 1 and 5"), 400, "stars must be between 1 and 5"},
		{"conflict", apperror.Conflict("you already liked this comment"), 400, "you already liked this comment"},
		{"unauthorized", apperror.Unauthorized("missing token"), 401, "missing token"},
		{"forbidden", apperror.Forbidden("not allowed"), 403, "not allowed"},
		{"not found wrapped", fmt.Errorf("get: %w", apperror.NotFound("product not found")), 404, "product not found"},
		{"plain error", errors.New("pq: connection reset"), 500, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, body["error"])
			_, hasDetails := body["details"]
			assert.False(t, hasDetails)
		})
	}
}

func TestError_Details(t *testing.T) {
	status, body := serveError(t, apperror.Invalid("invalid request", errors.New("text: cannot be blank.")))
	assert.Equal(t, 400, status)
	assert.Equal(t, "text: cannot be blank.", body["details"])
}

func TestError_UnexpectedHidesCause(t *testing.T) {
	status, body := serveError(t, apperror.Unexpected("failed to like comment", errors.New("tx aborted")))
	assert.Equal(t, 500, status)
	assert.Equal(t, "failed to like comment", body["error"])
	assert.Nil(t, body["details"])
}
