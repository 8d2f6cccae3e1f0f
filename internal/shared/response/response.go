package response

import (
	"net/http"

	"agromap-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the only error shape the API returns
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageBody acknowledges operations that return nothing else
type MessageBody struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Error converts err into {"error", "details"?} with the status of its kind.
// Errors that are not AppErrors are logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	status, body := render(err)

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.JSON(status, body)
}

// Abort writes the error and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func render(err error) (int, ErrorBody) {
	ae, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorBody{Error: "internal server error"}
	}

	body := ErrorBody{Error: ae.Message, Details: ae.Details}
	if ae.Kind == apperror.KindUnexpected {
		body.Details = ""
		if body.Error == "" {
			body.Error = "internal server error"
		}
	}
	return ae.Kind.HTTPStatus(), body
}
